package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/db"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/models"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/config"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
)

const seedPassword = "password123"

// Seeds the database with demo accounts, a follow graph, posts and
// engagement so a fresh install has something to show.
func main() {
	accountCount := flag.Int("accounts", 20, "number of demo accounts to create")
	postCount := flag.Int("posts", 60, "number of demo posts to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()
	logger := logging.GetLogger()

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("Failed to create token service", zap.Error(err))
	}
	passwords := auth.NewPasswordService(cfg.Auth.BcryptCost)

	repo := db.NewRepository(database.DB)
	accountRepo := db.NewAccountRepository(repo)
	socialRepo := db.NewSocialRepository(repo)
	postRepo := db.NewPostRepository(repo)
	engagementRepo := db.NewEngagementRepository(repo)
	activity := service.NewActivity(db.NewActivityRepository(repo))

	accounts := service.NewAccounts(accountRepo, socialRepo, postRepo, engagementRepo, activity, passwords, tokens)
	social := service.NewSocialGraph(accountRepo, socialRepo, activity, nil)
	content := service.NewContent(accountRepo, postRepo, engagementRepo, activity)

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	logger.Info("Seeding demo data",
		zap.Int("accounts", *accountCount),
		zap.Int("posts", *postCount))

	usernames := seedAccounts(ctx, logger, accounts, *accountCount)
	seedFollows(ctx, logger, social, usernames)
	postIDs := seedPosts(ctx, logger, content, usernames, *postCount)
	seedEngagement(ctx, logger, content, usernames, postIDs)

	logger.Info("Seeding complete")
}

func seedAccounts(ctx context.Context, logger *zap.Logger, accounts *service.Accounts, count int) []accountRef {
	refs := make([]accountRef, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		result, err := accounts.Register(ctx, service.RegisterInput{
			Username: username,
			Email:    gofakeit.Email(),
			Password: seedPassword,
			FullName: gofakeit.Name(),
		})
		if err != nil {
			logger.Warn("skipping account", zap.String("username", username), zap.Error(err))
			continue
		}

		bio := gofakeit.HipsterSentence(8)
		city := gofakeit.City()
		site := gofakeit.URL()
		if _, err := accounts.UpdateProfile(ctx, result.Account.ID, service.UpdateProfileInput{
			Bio:      &bio,
			Location: &city,
			Website:  &site,
		}); err != nil {
			logger.Warn("failed to fill profile", zap.String("username", username), zap.Error(err))
		}

		refs = append(refs, accountRef{ID: result.Account.ID, Username: username})
	}
	return refs
}

type accountRef struct {
	ID       int64
	Username string
}

func seedFollows(ctx context.Context, logger *zap.Logger, social *service.SocialGraph, refs []accountRef) {
	for _, follower := range refs {
		for i := 0; i < gofakeit.Number(2, 6) && len(refs) > 1; i++ {
			target := refs[gofakeit.Number(0, len(refs)-1)]
			if target.ID == follower.ID {
				continue
			}
			if _, err := social.ToggleFollow(ctx, follower.ID, target.Username); err != nil {
				logger.Debug("skipping follow", zap.Error(err))
			}
		}
	}
}

func seedPosts(ctx context.Context, logger *zap.Logger, content *service.Content, refs []accountRef, count int) []int64 {
	mediaTypes := []string{models.MediaTypeNone, models.MediaTypeNone, models.MediaTypeImage}
	ids := []int64{}
	for i := 0; i < count; i++ {
		author := refs[gofakeit.Number(0, len(refs)-1)]
		input := service.CreatePostInput{
			Title:     gofakeit.Sentence(4),
			Content:   gofakeit.Paragraph(1, 3, 12, " "),
			Tags:      []string{gofakeit.Word(), gofakeit.Word()},
			MediaType: mediaTypes[gofakeit.Number(0, len(mediaTypes)-1)],
		}
		// Roughly a quarter of posts are replies to an earlier post
		if len(ids) > 0 && gofakeit.Number(0, 3) == 0 {
			parent := ids[gofakeit.Number(0, len(ids)-1)]
			input.ParentID = &parent
		}
		view, err := content.CreatePost(ctx, author.ID, input)
		if err != nil {
			logger.Warn("skipping post", zap.Error(err))
			continue
		}
		if !view.IsReply {
			ids = append(ids, view.ID)
		}
	}
	return ids
}

func seedEngagement(ctx context.Context, logger *zap.Logger, content *service.Content, refs []accountRef, postIDs []int64) {
	for _, ref := range refs {
		for i := 0; i < gofakeit.Number(3, 8) && len(postIDs) > 0; i++ {
			postID := postIDs[gofakeit.Number(0, len(postIDs)-1)]
			if _, err := content.ToggleLike(ctx, ref.ID, postID); err != nil {
				logger.Debug("skipping like", zap.Error(err))
			}
			if gofakeit.Bool() {
				if _, err := content.ToggleSave(ctx, ref.ID, postID); err != nil {
					logger.Debug("skipping save", zap.Error(err))
				}
			}
		}
	}
}
