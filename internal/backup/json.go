package backup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/quitnow/internal/storage"
)

func verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc storage.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not a quitnow document: %w", err)
	}
	if doc.Version == 0 {
		return fmt.Errorf("not a quitnow document: missing version")
	}
	return nil
}
