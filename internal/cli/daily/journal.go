package daily

import (
	"strings"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/journal"
)

type JournalCmd struct {
	Add  JournalAddCmd  `cmd:"" help:"Record how you feel."`
	List JournalListCmd `cmd:"" help:"Show journal entries, newest first." default:"1"`
}

type JournalAddCmd struct {
	Mood string   `required:"" help:"great, good, okay, bad or awful."`
	Note []string `arg:"" optional:"" help:"Free-text note."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	mood, err := journal.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	j := journal.New(ctx.Store)
	entry, err := j.Add(mood, strings.Join(c.Note, " "), ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("Logged %s mood at %s.\n", entry.Mood, entry.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

type JournalListCmd struct {
	Limit int `short:"n" help:"Show at most N entries (0 for all)." default:"10"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	entries, err := journal.New(ctx.Store).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Println("No journal entries yet.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, e := range entries {
		ctx.Printf("%s  %-6s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Mood, e.Note)
	}
	return nil
}
