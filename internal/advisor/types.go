package advisor

// generateRequest is the body of a generateContent call.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

// schema is the subset of the OpenAPI schema object the API accepts.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// adviceSchema constrains the model output to {summary, tips, tone}.
var adviceSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"summary": {Type: "STRING"},
		"tips":    {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"tone":    {Type: "STRING", Enum: []string{"positive", "warning", "neutral"}},
	},
	Required: []string{"summary", "tips", "tone"},
}

// generateResponse is the raw API response. Only the first candidate is used.
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}
