package nlu

// Part-of-speech tags used by the profiler. Values follow the Universal
// Dependencies tag set emitted by the language service.
const (
	PosAdjective = "ADJ"
	PosAdverb    = "ADV"
	PosNoun      = "NOUN"
	PosVerb      = "VERB"
)

// Entity labels relevant to query generation.
const (
	LabelPerson       = "PERSON"
	LabelEvent        = "EVENT"
	LabelOrganization = "ORG"
)

// Token is a single token with its linguistic annotations.
// Sentiment is nil when the service has no usable signal for the token,
// which is distinct from an explicit zero.
type Token struct {
	Text      string   `json:"text"`
	Lemma     string   `json:"lemma"`
	Pos       string   `json:"pos"`
	Sentiment *float64 `json:"sentiment,omitempty"`
}

// Entity is a named entity with its label.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Analysis is the full linguistic analysis of one text.
type Analysis struct {
	Sentences  []string `json:"sentences"`
	Tokens     []Token  `json:"tokens"`
	Entities   []Entity `json:"entities"`
	NounChunks []string `json:"noun_chunks"`
}

// analyzeRequest is the JSON request body for the analyze endpoint.
type analyzeRequest struct {
	Text string `json:"text"`
}

// synonymsResponse is the JSON response for the synonyms endpoint.
type synonymsResponse struct {
	Word     string   `json:"word"`
	Synonyms []string `json:"synonyms"`
}

// apiError is the JSON error body returned by the language service.
type apiError struct {
	Error string `json:"error"`
}
