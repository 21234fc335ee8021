package dto

// ── 评分模块 DTO ──

// SubmitEvaluationRequest 提交评分请求
type SubmitEvaluationRequest struct {
	Score   *float64 `json:"score"   binding:"required,min=0,max=10"`
	Comment string   `json:"comment" binding:"omitempty,max=2000"`
}

// EvaluationResponse 评分信息响应
type EvaluationResponse struct {
	ID             string  `json:"id"`
	PresentationID string  `json:"presentation_id"`
	EvaluatorID    string  `json:"evaluator_id"`
	EvaluatorName  string  `json:"evaluator_name,omitempty"`
	Score          float64 `json:"score"`
	Comment        string  `json:"comment,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// PresentationScoreResponse 报告评分汇总响应
type PresentationScoreResponse struct {
	PresentationID string               `json:"presentation_id"`
	AverageScore   float64              `json:"average_score"`
	Count          int                  `json:"count"`
	Evaluations    []EvaluationResponse `json:"evaluations"`
}
