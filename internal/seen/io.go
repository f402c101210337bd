package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/urnscraper/internal/models"
)

// ReadURNs reads URNs from path. The file holds either a JSON array of URNs
// or a saved search result with a "urns" field.
func ReadURNs(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []string{}, nil
	}

	urns, err := decodeURNs(data)
	if err != nil {
		return nil, err
	}
	if urns == nil {
		return []string{}, nil
	}
	return urns, nil
}

func decodeURNs(data []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var result models.SearchResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result.URNs, nil
	}

	var urns []string
	if err := json.Unmarshal(data, &urns); err != nil {
		return nil, err
	}
	return urns, nil
}

// ReadURNsAllowMissing reads URNs and treats missing files as empty history.
func ReadURNsAllowMissing(path string) ([]string, error) {
	urns, err := ReadURNs(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	return urns, nil
}

// WriteURNs writes urns as pretty JSON.
func WriteURNs(path string, urns []string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if urns == nil {
		urns = []string{}
	}
	data, err := json.MarshalIndent(urns, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
