package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// ADRunner invokes the external directory-query script and reads the JSON
// results file it leaves behind. The directory query is best effort: a
// missing script, a failed run, or an unparseable results file all yield an
// empty collection, never an error, so the rest of the report still runs.
type ADRunner struct {
	Script      string
	ResultsFile string
	Log         zerolog.Logger
}

// Hostnames runs the query and returns the computer names it reported.
func (r *ADRunner) Hostnames(ctx context.Context) []string {
	if r.Script != "" {
		cmd := exec.CommandContext(ctx, r.Script)
		if output, err := cmd.CombinedOutput(); err != nil {
			r.Log.Warn().Err(err).Str("script", r.Script).
				Str("output", string(output)).
				Msg("directory query failed, treating AD collection as empty")
			return nil
		}
	}
	return r.readResults()
}

func (r *ADRunner) readResults() []string {
	content, err := os.ReadFile(r.ResultsFile)
	if err != nil {
		r.Log.Warn().Err(err).Str("file", r.ResultsFile).
			Msg("no AD results file, treating AD collection as empty")
		return nil
	}

	// PowerShell writes the file with a UTF-8 BOM.
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(content)) == 0 {
		r.Log.Warn().Str("file", r.ResultsFile).Msg("AD results file is empty")
		return nil
	}

	var hostnames []string
	if err := json.Unmarshal(content, &hostnames); err != nil {
		// A single-host query serializes as a bare string.
		var single string
		if err2 := json.Unmarshal(content, &single); err2 != nil {
			r.Log.Warn().Err(err).Str("file", r.ResultsFile).
				Msg("could not parse AD results, treating AD collection as empty")
			return nil
		}
		hostnames = []string{single}
	}

	filtered := hostnames[:0]
	for _, hostname := range hostnames {
		if hostname != "" {
			filtered = append(filtered, hostname)
		}
	}
	return filtered
}
