// Package retrieval 检索服务单元测试
package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	"github.com/ashwinyue/rag-gateway/internal/model"
)

// mockEmbedder Mock Embedding 器
type mockEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result := make([][]float64, len(texts))
	for i := range texts {
		result[i] = m.vector
	}
	return result, nil
}

// mockDocRepo Mock 文档仓库，记录收到的检索参数
type mockDocRepo struct {
	results      []model.SearchResult
	err          error
	gotEmbedding []float64
	gotThreshold float64
	gotLimit     int
}

func (m *mockDocRepo) MatchDocuments(ctx context.Context, embedding []float64, threshold float64, limit int) ([]model.SearchResult, error) {
	m.gotEmbedding = embedding
	m.gotThreshold = threshold
	m.gotLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func TestEmbed(t *testing.T) {
	emb := &mockEmbedder{vector: []float64{0.1, 0.2, 0.3}}
	svc := NewService(emb, &mockDocRepo{}, nil)

	vector, err := svc.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("vector length = %d", len(vector))
	}
}

func TestEmbedFailure(t *testing.T) {
	emb := &mockEmbedder{err: errors.New("provider down")}
	svc := NewService(emb, &mockDocRepo{}, nil)

	if _, err := svc.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRetrievePassesParameters(t *testing.T) {
	emb := &mockEmbedder{vector: []float64{0.5, 0.5}}
	docs := &mockDocRepo{results: []model.SearchResult{
		{Title: "Refunds", Content: "30 days", Similarity: 0.91},
	}}
	svc := NewService(emb, docs, nil)

	result, err := svc.Retrieve(context.Background(), "refund policy", 0.7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if docs.gotThreshold != 0.7 || docs.gotLimit != 5 {
		t.Fatalf("search called with threshold=%v limit=%d", docs.gotThreshold, docs.gotLimit)
	}
	if len(docs.gotEmbedding) != 2 {
		t.Fatal("query embedding not forwarded to search")
	}
	if len(result.Documents) != 1 || result.Documents[0].Title != "Refunds" {
		t.Fatalf("unexpected documents: %+v", result.Documents)
	}
	if len(result.Embedding) != 2 {
		t.Fatal("result must carry the query embedding")
	}
}

func TestRetrieveNoMatchesYieldsEmptySlice(t *testing.T) {
	svc := NewService(&mockEmbedder{vector: []float64{0.1}}, &mockDocRepo{}, nil)

	result, err := svc.Retrieve(context.Background(), "nothing", 0.5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Documents == nil || len(result.Documents) != 0 {
		t.Fatalf("documents = %#v, want empty non-nil slice", result.Documents)
	}
}

func TestRetrieveSearchFailure(t *testing.T) {
	svc := NewService(&mockEmbedder{vector: []float64{0.1}}, &mockDocRepo{err: errors.New("db down")}, nil)

	if _, err := svc.Retrieve(context.Background(), "q", 0.5, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildContext(t *testing.T) {
	docs := []model.SearchResult{
		{Title: "Doc A", Content: "content A"},
		{Title: "Doc B", Content: "content B"},
	}
	want := "Doc A: content A\n\nDoc B: content B"
	if got := BuildContext(docs); got != want {
		t.Fatalf("BuildContext() = %q, want %q", got, want)
	}
}

func TestBuildContextEmpty(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Fatalf("BuildContext(nil) = %q, want empty string", got)
	}
}
