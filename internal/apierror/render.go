package apierror

import (
	"encoding/json"
	"net/http"
)

// problemRender writes a ProblemDetails body under the problem+json content
// type. gin's JSON render always forces application/json.
type problemRender struct {
	problem *ProblemDetails
}

func (r problemRender) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	return json.NewEncoder(w).Encode(r.problem)
}

func (r problemRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeProblemJSON)
}
