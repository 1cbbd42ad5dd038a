package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hdc"
	"github.com/ayusman/mudra/internal/store"
)

var trainExamples int

func init() {
	trainCmd.Flags().IntVar(&trainExamples, "examples", 5, "number of examples to capture")
}

var trainCmd = &cobra.Command{
	Use:   "train <gesture>",
	Short: "Teach a new static hand pose from a few captured examples",
	Long:  "Opens the camera and, on each Enter press, captures the current hand pose as one training example for the named gesture.",
	Args:  cobra.ExactArgs(1),
	Example: `
  mudra train "Thumbs Up"
  mudra train "Peace Sign" --examples 8
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gestureName := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.New(path)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close()

		recognizer := hdc.New(cfg.Dim, cfg.NumBins, cfg.Threshold, cfg.Seed)
		if state, err := st.Recognizer().LoadState(); err == nil {
			if err := recognizer.Import(*state); err != nil {
				return fmt.Errorf("import saved recognizer state: %w", err)
			}
		} else if err != store.ErrNotFound {
			return fmt.Errorf("load recognizer state: %w", err)
		}

		cam := capture.NewCamera(cfg.CameraID)
		if err := cam.Open(); err != nil {
			return fmt.Errorf("open camera: %w", err)
		}
		defer cam.Close()

		var d detector.Detector
		mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			d = detector.NewMockDetector()
		} else {
			d = mp
		}
		defer d.Close()

		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("Training %q: hold the pose and press Enter to capture (%d examples needed).\n", gestureName, trainExamples)

		for i := 0; i < trainExamples; {
			fmt.Printf("[%d/%d] Press Enter to capture...", i+1, trainExamples)
			if _, err := reader.ReadString('\n'); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			frame, err := cam.ReadFrame()
			if err != nil {
				fmt.Printf("  failed to read frame: %v, try again\n", err)
				continue
			}

			hands, err := d.Detect(frame)
			if err != nil {
				fmt.Printf("  detection error: %v, try again\n", err)
				continue
			}
			if len(hands) == 0 {
				fmt.Println("  no hand detected, try again")
				continue
			}

			hv := recognizer.EncodeHand(&hands[0])
			count := recognizer.AddExample(gestureName, hv)
			fmt.Printf("  captured example %d\n", count)
			i++
		}

		if err := st.Recognizer().SaveState(recognizer.Export()); err != nil {
			return fmt.Errorf("save recognizer state: %w", err)
		}

		fmt.Printf("Trained %q with %d examples.\n", gestureName, recognizer.GetExampleCount(gestureName))
		return nil
	},
}
