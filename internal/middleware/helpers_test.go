package middleware

import (
	"encoding/json"
	"net/http/httptest"
)

func decodeJSON(w *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(w.Body.Bytes(), out)
}
