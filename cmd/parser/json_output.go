package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pokervr-matchlog/internal/parser"
)

// writeHandJSON writes a single hand as an indented JSON object.
func writeHandJSON(hand *parser.Hand, outputPath string) error {
	data, err := json.MarshalIndent(hand, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal hand: %w", err)
	}
	return writeAtomically(outputPath, func(f *os.File) error {
		_, err := f.Write(append(data, '\n'))
		return err
	})
}

// writeHandsJSON writes hands as a JSON array, one hand marshalled at a time so
// the whole document never has to be built in memory.
func writeHandsJSON(hands []*parser.Hand, outputPath string) error {
	return writeAtomically(outputPath, func(f *os.File) error {
		if _, err := f.WriteString("[\n"); err != nil {
			return err
		}

		for i, hand := range hands {
			handJSON, err := json.MarshalIndent(hand, "    ", "    ")
			if err != nil {
				return fmt.Errorf("failed to marshal hand %d: %w", hand.Index, err)
			}

			indented := "    " + string(handJSON)
			if i < len(hands)-1 {
				indented += ","
			}
			indented += "\n"

			if _, err := f.WriteString(indented); err != nil {
				return err
			}
		}

		_, err := f.WriteString("]\n")
		return err
	})
}

// writeAtomically writes to a temporary file next to outputPath and renames
// it into place once write succeeds.
func writeAtomically(outputPath string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), filepath.Base(outputPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
