package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/forcefield/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), pipeline.Options{
		Data: []byte(`{
			"nodes": [{"id": "a"}, {"id": "b"}],
			"links": [{"source": "a", "target": "b"}]
		}`),
		Width:   640,
		Height:  480,
		Settle:  50,
		Formats: []string{pipeline.FormatSVG},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("nodes:", result.Stats.NodeCount)
	fmt.Println("formats:", len(result.Frames))
	// Output:
	// nodes: 2
	// formats: 1
}

func ExampleOptions_ValidateAndSetDefaults() {
	opts := pipeline.Options{
		Data: []byte(`{"nodes": [], "links": []}`),
		// Width, Height, Theme, Settle, Zoom and Formats left as zero -
		// will get defaults
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("size:", opts.Width, "x", opts.Height)
	fmt.Println("theme:", opts.Theme)
	fmt.Println("formats:", opts.Formats)
	// Output:
	// size: 1920 x 1080
	// theme: default
	// formats: [png]
}
