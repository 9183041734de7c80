package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/file"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "flow-example")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := file.New(dir)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	snapshots := flow.NewSnapshots(store, flow.WithSnapshotLogger(logger))

	// 1. Open an editor on the welcome flow.
	ed := flow.NewEditor(flow.WithSnapshots(snapshots), flow.WithLogger(logger))
	fmt.Printf("welcome flow: %d nodes, next id node_%d\n", len(ed.Nodes()), ed.NextID())

	// ── Drop a video node and edit it ─────────────────────────────────
	video, err := ed.Drop(string(flow.VideoNode), flow.Position{X: 1450, Y: 150})
	if err != nil {
		log.Fatalf("drop: %v", err)
	}
	if err := ed.UpdateNodeField(video.ID, "videoUrl", "https://example.com/intro.mp4"); err != nil {
		log.Fatalf("update: %v", err)
	}

	// ── Saving now fails: the video node is a second entry point ──────
	err = ed.Save(ctx)
	fmt.Println(flow.SaveOutcome(err))

	// ── Wire it after node_3 and save ─────────────────────────────────
	if _, err := ed.Connect(flow.Connection{Source: "node_3", Target: video.ID}); err != nil {
		log.Fatalf("connect: %v", err)
	}
	// A second edge from the same source handle is rejected.
	if _, err := ed.Connect(flow.Connection{Source: "node_3", Target: "node_0"}); err != nil {
		fmt.Printf("second connect: %v\n", err)
	}
	fmt.Println(flow.SaveOutcome(ed.Save(ctx)))

	// ── A fresh editor picks the saved flow up ────────────────────────
	restored := flow.NewEditor(flow.WithSnapshots(snapshots))
	if _, err := restored.Load(ctx); err != nil {
		log.Fatalf("load: %v", err)
	}
	fmt.Printf("\nrestored flow, next id node_%d:\n", restored.NextID())
	printJSON(restored.Graph())
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
