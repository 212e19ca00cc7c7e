package dto

type EstimateRequest struct {
	From []float64 `json:"from"`
	To   []float64 `json:"to"`
}

type EstimateResponse struct {
	Miles float64 `json:"miles"`
}
