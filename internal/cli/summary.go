package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/maauso/silencesplit/internal/ffmpeg"
	"github.com/maauso/silencesplit/internal/media"
	"github.com/maauso/silencesplit/internal/split"
)

// PrintMediaInfo writes the probed properties of the source recording.
func PrintMediaInfo(w io.Writer, path string, info media.MediaInfo) {
	fmt.Fprintln(w, SectionStyle.Render("Input"))
	printKV(w, "File:       ", filepath.Base(path))
	printKV(w, "Size:       ", fmt.Sprintf("%.2f GB", info.SizeGB()))
	printKV(w, "Duration:   ", fmt.Sprintf("%.2f s (%.2f min)", info.Duration, info.Duration/60))
	printKV(w, "Sample rate:", fmt.Sprintf("%d Hz", info.SampleRate))
	printKV(w, "Channels:   ", fmt.Sprintf("%d", info.Channels))
	printKV(w, "Codec:      ", info.Codec)

	if !info.Tags.IsZero() {
		if info.Tags.Title != "" {
			printKV(w, "Title:      ", info.Tags.Title)
		}
		if info.Tags.Artist != "" {
			printKV(w, "Artist:     ", info.Tags.Artist)
		}
		if info.Tags.Album != "" {
			printKV(w, "Album:      ", info.Tags.Album)
		}
	}
	fmt.Fprintln(w)
}

// PrintTracks writes one line per track with its range and outcome.
func PrintTracks(w io.Writer, tracks []split.Track) {
	if len(tracks) == 0 {
		return
	}

	fmt.Fprintln(w, SectionStyle.Render("Tracks"))
	for _, t := range tracks {
		name := filepath.Base(t.OutputPath)
		line := fmt.Sprintf("  %02d  %-40s %9.2fs - %9.2fs  (%.2fs)", t.Index, name, t.Start, t.End, t.Duration)
		if !t.Success {
			fmt.Fprintf(w, "%s  %s\n", line, ErrorStyle.Render("FAILED: "+errString(t.Err)))
			continue
		}

		status := SuccessStyle.Render("ok")
		switch {
		case t.Location != "":
			status += " " + KeyStyle.Render("-> "+t.Location)
		case t.PublishErr != nil:
			status += " " + ErrorStyle.Render("publish failed: "+t.PublishErr.Error())
		}
		fmt.Fprintf(w, "%s  %s\n", line, status)
	}
	fmt.Fprintln(w)
}

// PrintSummary writes the totals of a finished run.
func PrintSummary(w io.Writer, report *split.Report) {
	fmt.Fprintln(w, SectionStyle.Render("Summary"))
	printKV(w, "Original duration:", fmt.Sprintf("%.2f s", report.Info.Duration))
	printKV(w, "Segments duration:", fmt.Sprintf("%.2f s", report.SegmentsDuration()))
	printKV(w, "Files created:    ", fmt.Sprintf("%d", report.Created()))
	if failed := report.Failed(); failed > 0 {
		printKV(w, "Failed:           ", fmt.Sprintf("%d", failed))
	}
	if published := report.Published(); published > 0 {
		printKV(w, "Published:        ", fmt.Sprintf("%d", published))
	}
	printKV(w, "Output directory: ", report.OutputDir)
}

// errString shortens a track error to one line. For a failed ffmpeg
// invocation only the exit status and the last stderr line are kept.
func errString(err error) string {
	if err == nil {
		return "unknown error"
	}

	var ffErr *ffmpeg.Error
	if errors.As(err, &ffErr) {
		msg := ffErr.Err.Error()
		if last := lastLine(ffErr.Stderr); last != "" {
			msg += ": " + last
		}
		return msg
	}

	return strings.Join(strings.Fields(err.Error()), " ")
}

func lastLine(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
