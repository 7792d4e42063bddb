package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/export"
	"github.com/san-kum/nodemesh/internal/headless"
	"github.com/san-kum/nodemesh/internal/metrics"
	"github.com/san-kum/nodemesh/internal/storage"
	"github.com/san-kum/nodemesh/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	var (
		frames     int
		pointerX   float64
		pointerY   float64
		jsonPath   string
		plotMetric string
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "step the network headless and report metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pickSeed(cfg)
			runner := headless.Runner{
				Frames:     frames,
				Width:      cfg.Render.Width,
				Height:     cfg.Render.Height,
				Pointer:    camera.Pointer{X: pointerX, Y: pointerY}.Clamp(),
				NewMetrics: metrics.Standard,
				Logger:     logger,
			}

			heading.Printf("running %d frames (seed %d)...\n", frames, cfg.Seed)
			start := time.Now()
			res, err := runner.Run(cmd.Context(), cfg.Visualizer())
			if err != nil {
				return surfaceErr(err)
			}
			elapsed := time.Since(start)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "frames\t%d\n", res.Frames)
			fmt.Fprintf(w, "nodes\t%d\n", res.Nodes)
			fmt.Fprintf(w, "connections\t%d\n", res.Connections)
			fmt.Fprintf(w, "camera\t%+.3f %+.3f %+.3f\n", res.Camera.X, res.Camera.Y, res.Camera.Z)
			fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
			if err := w.Flush(); err != nil {
				return err
			}

			heading.Println("\nmetrics:")
			names := make([]string, 0, len(res.Metrics))
			for name := range res.Metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range names {
				fmt.Fprintf(w, "  %s\t%.6f\n", name, res.Metrics[name])
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if series := res.Series[plotMetric]; len(series) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(series,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(plotMetric)))
			}

			if jsonPath != "" {
				if err := headless.ExportJSON(jsonPath, res); err != nil {
					return err
				}
				subtle.Printf("\nwrote %s\n", jsonPath)
			}
			if save {
				st := storage.New(runsDir)
				if err := st.Init(); err != nil {
					return err
				}
				id, err := st.Save(cfg.Preset, res)
				if err != nil {
					return err
				}
				subtle.Printf("saved run %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 600, "frames to step")
	cmd.Flags().Float64Var(&pointerX, "pointer-x", 0, "held pointer x in [-1,1]")
	cmd.Flags().Float64Var(&pointerY, "pointer-y", 0, "held pointer y in [-1,1]")
	cmd.Flags().StringVar(&jsonPath, "json", "", "export the result as JSON")
	cmd.Flags().StringVar(&plotMetric, "plot", "connection_stretch", "metric to chart")
	cmd.Flags().BoolVar(&save, "save", false, "store the run under --runs-dir")
	return cmd
}

func newSurveyCmd() *cobra.Command {
	var (
		runs    int
		frames  int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "compare connection counts across seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pickSeed(cfg)
			e := headless.NewEnsemble(headless.Runner{Frames: frames, Logger: logger}, runs, cfg.Seed)
			e.Workers = workers

			start := time.Now()
			results, err := e.Run(cmd.Context(), cfg.Visualizer())
			if err != nil {
				return surfaceErr(err)
			}
			s := headless.Summarize(results, cfg.Network.ConnectionProbability)
			logger.Info("survey finished", zap.Int("runs", runs), zap.Duration("elapsed", time.Since(start)))

			heading.Printf("%d seeds from %d, %d nodes\n\n", s.Runs, cfg.Seed, cfg.Network.Nodes)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SEED\tCONNECTIONS")
			counts := make([]float64, len(results))
			for i, r := range results {
				fmt.Fprintf(w, "%d\t%d\n", r.Seed, r.Connections)
				counts[i] = float64(r.Connections)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "\nmean\t%.2f\n", s.Mean)
			fmt.Fprintf(w, "stddev\t%.2f\n", s.StdDev)
			fmt.Fprintf(w, "min / max\t%d / %d\n", s.Min, s.Max)
			fmt.Fprintf(w, "probability gate alone\t%.1f\n", s.Expected)
			if err := w.Flush(); err != nil {
				return err
			}
			if len(counts) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(counts, asciigraph.Height(8), asciigraph.Caption("connections per seed")))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 32, "number of seeds")
	cmd.Flags().IntVarP(&frames, "frames", "n", 0, "frames to step each run")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = one per seed)")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	var (
		frames int
		out    string
		mode   string
		scale  float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write an SVG of the network after some frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pickSeed(cfg)
			width, height := cfg.Render.Width, cfg.Render.Height
			runner := headless.Runner{
				Frames: frames,
				Width:  width,
				Height: height,
				Trails: mode == "trails",
				Logger: logger,
			}
			res, err := runner.Run(cmd.Context(), cfg.Visualizer())
			if err != nil {
				return surfaceErr(err)
			}

			net, cam := res.Net, &res.View
			style := export.StyleFrom(cfg.Style)
			var svg string
			switch mode {
			case "scene":
				svg = export.SceneToSVG(net, cam, width, height, style)
			case "canvas":
				canvas := viz.NewCanvas(max(width/16, 1), max(height/32, 1))
				cw, ch := canvas.PixelSize()
				if err := cam.Resize(cw, ch); err != nil {
					return err
				}
				viz.RenderNetwork(canvas, net, cam)
				svg = export.CanvasToSVG(canvas, scale, style)
			case "trails":
				svg = export.TrailsToSVG(res.Trails, width, height, style)
			default:
				return fmt.Errorf("unknown mode %q (scene, canvas, trails)", mode)
			}
			if err := export.WriteFile(out, svg); err != nil {
				return err
			}
			heading.Printf("wrote %s", out)
			subtle.Printf(" (%s, %d frames, seed %d)\n", mode, res.Frames, cfg.Seed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&frames, "frames", "n", 120, "frames to step before drawing")
	cmd.Flags().StringVarP(&out, "out", "o", "nodemesh.svg", "output file")
	cmd.Flags().StringVar(&mode, "mode", "scene", "scene, canvas or trails")
	cmd.Flags().Float64Var(&scale, "scale", 4, "dot spacing for canvas mode")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNODES\tPROBABILITY\tDISTANCE\tSPEED\tSMOOTHING\tPARALLAX")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f\t%.3f\t%.2f\t%.1f\n",
					name,
					p.Network.Nodes,
					p.Network.ConnectionProbability,
					p.Network.MaxConnectionDistance,
					p.Network.MaxSpeed,
					p.Camera.Smoothing,
					p.Camera.Parallax,
				)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "nodemesh.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			heading.Printf("wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)
	return configCmd
}

func newRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(runsDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				subtle.Printf("no runs in %s\n", runsDir)
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tSEED\tFRAMES\tCONNECTIONS\tTIME")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
					r.ID, r.Preset, r.Seed, r.Frames, r.Connections, r.Timestamp.Format(time.DateTime))
			}
			return w.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "print a stored run's metrics and chart one series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(runsDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}
			series, err := st.LoadSeries(args[0])
			if err != nil {
				return fmt.Errorf("load series: %w", err)
			}
			plot, _ := cmd.Flags().GetString("plot")

			heading.Printf("%s\n", meta.ID)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "preset\t%s\n", meta.Preset)
			fmt.Fprintf(w, "seed\t%d\n", meta.Seed)
			fmt.Fprintf(w, "nodes\t%d\n", meta.Nodes)
			fmt.Fprintf(w, "connections\t%d\n", meta.Connections)
			names := make([]string, 0, len(meta.Metrics))
			for name := range meta.Metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%.6f\n", name, meta.Metrics[name])
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if values := series[plot]; len(values) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(plot)))
			}
			return nil
		},
	}
	showCmd.Flags().String("plot", "connection_stretch", "series to chart")
	runsCmd.AddCommand(showCmd)
	return runsCmd
}
