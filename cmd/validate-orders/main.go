package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/pos_orders/pkg/validate"
)

// CLI для проверки запросов на создание заказа до отправки в API.
// Валидные заказы печатаются в stdout (с посчитанной суммой), причины отказа: в stderr.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	orderValidator := validate.NewOrderValidator()

	format := validate.InputFormat(*formatStr)
	path := *inputPath

	// stdin вариант: считаем, что jsonl
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, orderValidator, path, format, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", validate.Message(err), summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation done (%s)\n", summary)
}
