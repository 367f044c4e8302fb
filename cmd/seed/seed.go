package seed

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"minisocial/internal/config"
	"minisocial/internal/database"
	"minisocial/internal/repository"
	fakedata "minisocial/internal/seed"
	"minisocial/internal/service"
	"minisocial/internal/timefmt"
)

const (
	usersFlag = "users"
	postsFlag = "posts"
	seedFlag  = "seed"
)

var seedFlags = map[string]cobraflags.Flag{
	usersFlag: &cobraflags.StringFlag{
		Name:  usersFlag,
		Value: "20",
		Usage: "Number of users to create",
	},
	postsFlag: &cobraflags.StringFlag{
		Name:  postsFlag,
		Value: "5",
		Usage: "Number of posts per user",
	},
	seedFlag: &cobraflags.StringFlag{
		Name:  seedFlag,
		Value: "0",
		Usage: "Random seed for reproducible data (0 picks one)",
	},
}

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users, posts, follows, likes and comments",
		Long: `Fill the database with fake data for local development.

Every seeded account uses the password "` + fakedata.Password + `".`,
		RunE: seedCommand,
	}
	cobraflags.RegisterMap(cmd, seedFlags)
	return cmd
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	opts, err := parseOptions()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(cmd.Context(), db); err != nil {
		return err
	}

	repos := repository.NewSet(db)
	formatter := timefmt.New("raw")
	generator := fakedata.NewGenerator(
		service.NewUserService(repos.Users),
		service.NewPostService(repos.Posts, repos.Likes, formatter),
		service.NewCommentService(repos.Comments, formatter),
		service.NewFollowService(repos.Follows, repos.Users),
	)

	result, err := generator.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d posts, %d follows, %d likes, %d comments.\n",
		result.Users, result.Posts, result.Follows, result.Likes, result.Comments)
	return nil
}

func parseOptions() (fakedata.Options, error) {
	users, err := strconv.Atoi(seedFlags[usersFlag].GetString())
	if err != nil {
		return fakedata.Options{}, fmt.Errorf("--%s must be an integer: %w", usersFlag, err)
	}
	posts, err := strconv.Atoi(seedFlags[postsFlag].GetString())
	if err != nil {
		return fakedata.Options{}, fmt.Errorf("--%s must be an integer: %w", postsFlag, err)
	}
	randSeed, err := strconv.ParseInt(seedFlags[seedFlag].GetString(), 10, 64)
	if err != nil {
		return fakedata.Options{}, fmt.Errorf("--%s must be an integer: %w", seedFlag, err)
	}
	return fakedata.Options{Users: users, PostsPerUser: posts, Seed: randSeed}, nil
}
