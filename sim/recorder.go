package sim

import (
	"log/slog"

	"github.com/pthm-cable/critters/telemetry"
)

// bookmarkHistory is the number of stats windows the bookmark detector keeps.
const bookmarkHistory = 10

// Recorder routes one simulation's tick reports to CSV output, bookmark
// detection and snapshots. A Recorder belongs to a single world and is not
// shared between goroutines.
type Recorder struct {
	sim         *Simulation
	out         *telemetry.OutputManager
	bookmarks   *telemetry.BookmarkDetector
	snapshotDir string
	logStats    bool

	// OnStats, if set, receives every flushed window.
	OnStats func(telemetry.WindowStats)
}

// NewRecorder creates a recorder for s. out may be nil (no CSV output) and
// snapshotDir may be empty (no snapshots).
func NewRecorder(s *Simulation, out *telemetry.OutputManager, snapshotDir string, logStats bool) *Recorder {
	return &Recorder{
		sim:         s,
		out:         out,
		bookmarks:   telemetry.NewBookmarkDetector(bookmarkHistory),
		snapshotDir: snapshotDir,
		logStats:    logStats,
	}
}

// Record handles one tick report: lineage events are appended, and every
// window flushed since the last call is logged, written and checked for
// bookmarks. Write failures are logged and do not stop the run.
func (r *Recorder) Record(rep Report) error {
	log := r.sim.log
	if err := r.out.WriteEvents(rep.Events); err != nil {
		log.Error("failed to write events", "error", err)
	}

	for _, stats := range r.sim.DrainStats() {
		perfStats := r.sim.Perf().Stats()

		if r.OnStats != nil {
			r.OnStats(stats)
		}

		if r.logStats {
			stats.LogStats()
			perfStats.LogStats()
		}

		if err := r.out.WriteTelemetry(stats); err != nil {
			log.Error("failed to write telemetry", "error", err)
		}
		if err := r.out.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			log.Error("failed to write perf", "error", err)
		}

		for _, bm := range r.bookmarks.Check(stats) {
			if r.logStats {
				bm.LogBookmark()
			}
			if err := r.out.WriteBookmark(bm); err != nil {
				log.Error("failed to write bookmark", "error", err)
			}
			if r.snapshotDir != "" {
				r.SaveSnapshot(&bm)
			}
		}
	}
	return nil
}

// SaveSnapshot writes the current world state, tagged with bm if non-nil.
func (r *Recorder) SaveSnapshot(bm *telemetry.Bookmark) (string, error) {
	snap := r.sim.Snapshot()
	snap.Bookmark = bm
	dir := r.snapshotDir
	if dir == "" {
		dir = "."
	}
	path, err := telemetry.SaveSnapshot(snap, dir)
	if err != nil {
		r.sim.log.Error("failed to save snapshot", "error", err)
		return "", err
	}
	slog.Info("snapshot saved", "path", path, "tick", snap.Tick)
	return path, nil
}
