package report

import (
	"encoding/json"
	"os"
)

// Manifest records what one run produced, so a dataset directory is
// self-describing.
type Manifest struct {
	RunID      string   `json:"run_id"`
	Generated  string   `json:"generated"`
	Seed       uint64   `json:"seed"`
	Label      string   `json:"label"`
	Epoch      string   `json:"epoch"`
	Capacity   int      `json:"capacity"`
	Households int      `json:"households,omitempty"`
	Samples    int      `json:"samples"`
	Cards      int      `json:"cards"`
	Tables     []string `json:"tables,omitempty"`
	Artifacts  []string `json:"artifacts"`
}

func WriteManifest(path string, m Manifest) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0644)
}
