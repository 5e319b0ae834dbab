package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type VectorStore interface {
	InitCollection() error
	Add(ctx context.Context, text string, embedding []float32, metadata map[string]interface{}) (string, error)
	Search(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]SearchResult, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

type SearchResult struct {
	ID       string
	Score    float32
	Text     string
	Metadata map[string]interface{}
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC endpoint, port 6334 unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // nomic-embed-text dimension
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Add implements VectorStore. Returns the opaque point id under which the
// chunk is retrievable.
func (q *qdrantStore) Add(ctx context.Context, text string, embedding []float32, metadata map[string]interface{}) (string, error) {
	pointID := uuid.New().String()

	payload := make(map[string]interface{}, len(metadata)+1)
	for key, value := range metadata {
		payload[key] = value
	}
	payload["text"] = text

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(payload),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert point: %w", err)
	}

	return pointID, nil
}

// Search implements VectorStore. filter entries become exact-match payload
// conditions that must all hold.
func (q *qdrantStore) Search(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]SearchResult, error) {
	var qdrantFilter *qdrant.Filter
	if len(filter) > 0 {
		var must []*qdrant.Condition
		for field, value := range filter {
			must = append(must, qdrant.NewMatch(field, value))
		}
		qdrantFilter = &qdrant.Filter{Must: must}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         qdrantFilter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range points {
		result := SearchResult{
			Score:    point.Score,
			Metadata: make(map[string]interface{}, len(point.Payload)),
		}

		if id := point.Id.GetUuid(); id != "" {
			result.ID = id
		}

		for key, value := range point.Payload {
			result.Metadata[key] = valueToInterface(value)
		}

		if text, ok := result.Metadata["text"].(string); ok {
			result.Text = text
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteByDocumentID implements VectorStore. Removes every point ingested
// for the given source document.
func (q *qdrantStore) DeleteByDocumentID(ctx context.Context, documentID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete document points: %w", err)
	}

	return nil
}

func valueToInterface(value *qdrant.Value) interface{} {
	switch kind := value.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	default:
		return value.String()
	}
}
