package wizard

type SetFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type ChooseRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

type FlowsResponse struct {
	Flows []string `json:"flows"`
}
