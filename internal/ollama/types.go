package ollama

// GenerateRequest describes a single non-streamed completion.
type GenerateRequest struct {
	Prompt      string
	Temperature float64
	NumPredict  int
}

// generateRequest is the request body for Ollama's /api/generate endpoint.
// Sampling settings are sent both top-level and under options; Ollama reads the latter.
type generateRequest struct {
	Model       string          `json:"model"`
	Prompt      string          `json:"prompt"`
	Stream      bool            `json:"stream"`
	Temperature float64         `json:"temperature"`
	NumPredict  int             `json:"num_predict"`
	Options     generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is the response from Ollama's /api/generate endpoint.
// Response is a pointer so a missing key can be told apart from empty output.
type generateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}
