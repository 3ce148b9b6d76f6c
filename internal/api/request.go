package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

const maxBodyBytes = 1 << 20

var errInvalidNumber = errors.New("invalid number")

// requestFields gives uniform access to request values sent either as a
// JSON object or as a form
type requestFields struct {
	form url.Values
	json map[string]json.RawMessage
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// readFields parses the request body. An empty body yields no fields.
func readFields(r *http.Request) (requestFields, error) {
	if isFormRequest(r) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return requestFields{}, fmt.Errorf("failed to parse form: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return requestFields{}, fmt.Errorf("failed to parse form: %w", err)
		}
		return requestFields{form: r.PostForm}, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return requestFields{}, fmt.Errorf("failed to read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return requestFields{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return requestFields{}, fmt.Errorf("failed to decode body: %w", err)
	}
	return requestFields{json: fields}, nil
}

// str returns a string field. Non-string JSON values are treated as absent.
func (f requestFields) str(key string) string {
	if f.form != nil {
		return f.form.Get(key)
	}
	raw, ok := f.json[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// integer returns an integer field, accepting a JSON number or a numeric string.
// ok is false when the field is absent or null.
func (f requestFields) integer(key string, bitSize int) (value int64, ok bool, err error) {
	var text string
	if f.form != nil {
		if !f.form.Has(key) {
			return 0, false, nil
		}
		text = f.form.Get(key)
	} else {
		raw, present := f.json[key]
		if !present {
			return 0, false, nil
		}
		raw = bytes.TrimSpace(raw)
		switch {
		case bytes.Equal(raw, []byte("null")):
			return 0, false, nil
		case len(raw) > 0 && raw[0] == '"':
			if err := json.Unmarshal(raw, &text); err != nil {
				return 0, true, errInvalidNumber
			}
		default:
			text = string(raw)
		}
	}

	value, err = strconv.ParseInt(strings.TrimSpace(text), 10, bitSize)
	if err != nil {
		return 0, true, errInvalidNumber
	}
	return value, true, nil
}

func decodeStartRequest(r *http.Request) (models.StartQuizRequest, error) {
	fields, err := readFields(r)
	if err != nil {
		return models.StartQuizRequest{}, err
	}
	return models.StartQuizRequest{PlayerName: fields.str("playerName")}, nil
}

// decodeAnswerRequest reads selectedAnswer and timeSpent. A missing or negative
// timeSpent is zero.
func decodeAnswerRequest(r *http.Request) (models.SubmitAnswerRequest, error) {
	fields, err := readFields(r)
	if err != nil {
		return models.SubmitAnswerRequest{}, err
	}

	var req models.SubmitAnswerRequest

	selected, ok, err := fields.integer("selectedAnswer", 32)
	if err != nil {
		return req, err
	}
	if ok {
		v := int(selected)
		req.SelectedAnswer = &v
	}

	spent, _, err := fields.integer("timeSpent", 64)
	if err != nil {
		return req, err
	}
	if spent > 0 {
		req.TimeSpent = spent
	}

	return req, nil
}
