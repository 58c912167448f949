package load_history

import "github.com/m04kA/rental-guide-service/internal/service/feed"

// LoadHistoryResponse HTTP response model
type LoadHistoryResponse struct {
	Added   int  `json:"added"`
	HasMore bool `json:"hasMore"`
	Skipped bool `json:"skipped"` // Загрузка уже шла или архив исчерпан
}

// FromLoadResult конвертирует результат загрузки в HTTP response
func FromLoadResult(res feed.LoadResult) *LoadHistoryResponse {
	return &LoadHistoryResponse{
		Added:   res.Added,
		HasMore: res.HasMore,
		Skipped: res.Skipped,
	}
}
