package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best scores and overall statistics.

Without --difficulty every difficulty is listed together.

Examples:
  tetris scores
  tetris scores --difficulty hard --limit 20
  tetris scores --tui
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, _ []string) error {
	difficulty := ""
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		n, err := store.ClearScores(tetris.GameID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d scores.\n", n)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, tetris.GameID, difficulty, width, height)
	}

	return printScores(os.Stdout, store, difficulty, flagScoresLimit)
}

// printScores writes the score table and summary for one difficulty, or for
// all of them when difficulty is empty.
func printScores(w io.Writer, store *storage.Store, difficulty string, limit int) error {
	scores, err := store.TopScores(tetris.GameID, difficulty, limit)
	if err != nil {
		return err
	}

	title := "High Scores"
	if difficulty != "" {
		title = fmt.Sprintf("High Scores - %s", difficulty)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'tetris play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-5s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Lines", "Time", "Level", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %-5s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "----", "-----", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-12s  %-8d  %-5d  %-6s  %-8s  %s\n",
			i+1, player, e.Score, e.Lines, clock(e.Duration), e.Difficulty,
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(tetris.GameID, difficulty)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	if difficulty != "" {
		fmt.Fprintf(w, "Best on %s: %d\n", difficulty, best)
	} else {
		fmt.Fprintf(w, "Best: %d\n", best)
	}

	stats, err := store.GetGameStats(tetris.GameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Games: %d   Average: %.0f\n", stats.GamesCount, stats.AvgScore)
	fmt.Fprintf(w, "Lines: %d total, %d best   Time played: %s\n", stats.TotalLines, stats.BestLines, stats.TimePlayed)
	return nil
}

func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
