package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash    BookmarkType = "population_crash"
	BookmarkPopulationRecovery BookmarkType = "population_recovery"
	BookmarkSpeciesBoom        BookmarkType = "species_boom"
	BookmarkHybridSurge        BookmarkType = "hybrid_surge"
	BookmarkStableEcosystem    BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPopMin       int // minimum population in recent history
	recentPopPeak      int // peak population in recent history
	stableWindowsCount int // consecutive windows with stable population
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		checks := []func(WindowStats) *Bookmark{
			bd.checkPopulationCrash,
			bd.checkPopulationRecovery,
			bd.checkSpeciesBoom,
			bd.checkHybridSurge,
			bd.checkStableEcosystem,
		}
		for _, check := range checks {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if stats.Population < bd.recentPopMin || bd.recentPopMin == 0 {
		bd.recentPopMin = stats.Population
	}
	if stats.Population > bd.recentPopPeak {
		bd.recentPopPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPopPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPopPeak)
	if drop > 0.30 && stats.Population < bd.recentPopPeak-10 {
		oldPeak := bd.recentPopPeak
		bd.recentPopPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationRecovery(stats WindowStats) *Bookmark {
	if bd.recentPopMin == 0 || bd.recentPopMin > 5 {
		return nil
	}

	if stats.Population >= bd.recentPopMin*3 && stats.Population >= 10 {
		oldMin := bd.recentPopMin
		bd.recentPopMin = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population recovered from %d to %d", oldMin, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSpeciesBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	counts := make([]float64, len(history))
	for i, h := range history {
		counts[i] = float64(h.Species)
	}
	avg := stat.Mean(counts, nil)
	if avg == 0 {
		return nil
	}

	if float64(stats.Species) > avg*1.5 && stats.Species >= 4 {
		return &Bookmark{
			Type:        BookmarkSpeciesBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d living species is %.1fx average (%.1f)", stats.Species, float64(stats.Species)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkHybridSurge(stats WindowStats) *Bookmark {
	last := bd.history[(bd.historyIdx-1+bd.historySize)%bd.historySize]

	if stats.Hybrids >= 3 && stats.Hybrids >= last.Hybrids*2 {
		return &Bookmark{
			Type:        BookmarkHybridSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Living hybrid species rose from %d to %d", last.Hybrids, stats.Hybrids),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Population < 10 || stats.Species < 2 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := make([]float64, 4)
	for i, h := range history[len(history)-4:] {
		recent[i] = float64(h.Population)
	}
	mean, std := stat.PopMeanStdDev(recent, nil)

	// Coefficient of variation under 20%
	if mean > 0 && std/mean < 0.2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d creatures across %d species over 5+ windows", stats.Population, stats.Species),
		}
	}
	return nil
}
