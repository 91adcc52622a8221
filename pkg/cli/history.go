package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/spoor/pkg/model"
	historyuc "github.com/m-mizutani/spoor/pkg/usecase/history"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var (
		cfg    config
		userID string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "User ID to dump visit history for",
			Sources:     cli.EnvVars("SPOOR_USER_ID"),
			Destination: &userID,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "history",
		Usage: "Dump the decoded visit history of a user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			history, err := historyuc.New(repo).Get(ctx, model.UserID(userID))
			if err != nil {
				return goerr.Wrap(err, "failed to get history")
			}

			if len(history) == 0 {
				fmt.Fprintf(c.Root().Writer, "No history for user %s\n", userID)
				return nil
			}

			for _, e := range history.Entries() {
				pin := " "
				if e.Pinned {
					pin = "*"
				}
				fmt.Fprintf(c.Root().Writer, "%s %s\t%s\t%s\t%v\n",
					pin,
					e.ID,
					e.Text,
					time.UnixMilli(e.Time).Format("2006-01-02 15:04:05"),
					e.Tags,
				)
			}

			return nil
		},
	}
}
