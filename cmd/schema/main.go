package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/umputun/logos/pkg/config"
)

func main() {
	schema := config.GenerateSchema()
	schema.Title = "logos configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		log.Fatalf("failed to write schema file: %v", err)
	}

	fmt.Printf("Schema generated successfully at %s\n", outputPath)
}
