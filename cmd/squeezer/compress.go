package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
	"github.com/yourname/squeezer/internal/usecase/submission"
	"github.com/yourname/squeezer/pkg/compressproto"
)

type compressOptions struct {
	quality     int
	maxSize     int
	progressive bool
	outDir      string
}

func newCompressCmd(root *rootOptions) *cobra.Command {
	opts := &compressOptions{}

	cmd := &cobra.Command{
		Use:   "compress <image>",
		Short: "Compress one image and save the result as " + compressproto.DefaultDownloadName,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.quality, "quality", "q", compressproto.DefaultQuality, "JPEG quality (1-95)")
	f.IntVar(&opts.maxSize, "max-size", compressproto.DefaultMaxSize, "longest side in pixels (256-10000)")
	f.BoolVar(&opts.progressive, "progressive", compressproto.DefaultProgressive, "request a progressive JPEG")
	f.StringVarP(&opts.outDir, "out", "o", "", "directory to save into (default download_dir)")

	return cmd
}

func runCompress(cmd *cobra.Command, root *rootOptions, opts *compressOptions, path string) error {
	cfg := root.cfg

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Поля формы: только то, что пользователь задал явно.
	values := map[string]string{}
	flags := cmd.Flags()
	if flags.Changed("quality") {
		values[compressproto.FieldQuality] = strconv.Itoa(opts.quality)
	}
	if flags.Changed("max-size") {
		values[compressproto.FieldMaxSize] = strconv.Itoa(opts.maxSize)
	}
	if flags.Changed("progressive") {
		values[compressproto.FieldProgressive] = strconv.FormatBool(opts.progressive)
	}

	dir := cfg.DownloadDir
	if opts.outDir != "" {
		dir = opts.outDir
	}
	cl := buildClient(cfg, dir)
	defer cl.ctrl.Close()

	err = cl.ctrl.SubmitFields(requestbuilder.Fields{
		Image:  &models.ImageFile{Name: filepath.Base(path), Data: data},
		Values: values,
	})
	if err != nil {
		return err
	}

	select {
	case <-cl.ctrl.Done():
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}

	out := cmd.OutOrStdout()
	switch st := cl.ctrl.State().(type) {
	case submission.Succeeded:
		meta := st.Artifact.Meta()
		fmt.Fprintf(out, "%s: %s -> %s (%dx%d)\n",
			filepath.Base(path),
			humanize.Bytes(uint64(len(data))),
			humanize.Bytes(uint64(st.Artifact.Size())),
			meta.Width, meta.Height,
		)
		saved, err := cl.ctrl.Saved()
		if err != nil {
			return fmt.Errorf("save %s: %w", cfg.DownloadName, err)
		}
		fmt.Fprintf(out, "saved to %s\n", saved)
		return nil
	case submission.Failed:
		return errors.New(st.Message)
	default:
		return fmt.Errorf("unexpected state %s", st.Name())
	}
}
