package influx

import (
	"encoding/json"
)

// queryResponse mirrors the top-level JSON shape of a /query response.
type queryResponse struct {
	Results []ResultSet `json:"results"`
}

// ParseResults converts a raw JSON query response into the ordered sequence
// of per-statement result sets.
//
// An absent or empty results array yields an empty slice, not an error. When
// raiseOnStatementError is true the first statement that carries an error
// field fails the whole call with a StatementError naming the statement
// index; when false the error is recorded on the ResultSet and parsing
// continues.
//
// Parsing is a pure function of the body and flag: identical input always
// yields a value-identical result tree.
func ParseResults(body []byte, raiseOnStatementError bool) ([]ResultSet, error) {
	var decoded queryResponse

	err := json.Unmarshal(body, &decoded)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	results := make([]ResultSet, 0, len(decoded.Results))

	for i, result := range decoded.Results {
		if result.Error != "" && raiseOnStatementError {
			return nil, &StatementError{Index: i, Message: result.Error}
		}

		if result.Series == nil {
			result.Series = []Series{}
		}

		results = append(results, result)
	}

	return results, nil
}
