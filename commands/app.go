package commands

import (
	"fmt"
	"os"

	"feedpost/app/config"
	"feedpost/app/locale"
	"feedpost/app/models"
	"feedpost/app/repositories"
	"feedpost/app/routes"
	"feedpost/app/services"
	"feedpost/app/views"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// App is the wired server: store, services and router.
type App struct {
	DB       *badger.DB
	Posts    *services.PostService
	Comments *services.CommentService
	Router   *mux.Router
	Logger   *zap.Logger
}

// NewApp opens the store and builds every layer from cfg.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	location, err := cfg.GetLocation()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.GetInstanceTTL()
	if err != nil {
		return nil, err
	}

	loc, err := locale.New(cfg.Locale, location, models.Validator())
	if err != nil {
		return nil, err
	}
	renderer, err := views.NewRenderer(loc)
	if err != nil {
		return nil, err
	}

	db, err := repositories.OpenDB(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	instances := repositories.NewInstanceStore(cfg.Instances.Capacity, ttl, logger)
	posts := services.NewPostService(postRepo, instances, logger)
	comments := services.NewCommentService(postRepo, instances)

	return &App{
		DB:       db,
		Posts:    posts,
		Comments: comments,
		Router: routes.SetupRoutes(routes.Deps{
			Posts:    posts,
			Comments: comments,
			Renderer: renderer,
			Logger:   logger,
		}),
		Logger: logger,
	}, nil
}

// Close closes the store.
func (a *App) Close() error {
	return a.DB.Close()
}

// SeedFile is the YAML document accepted by the seed command.
type SeedFile struct {
	Posts []*models.Post `yaml:"posts"`
}

// LoadSeed reads the posts of a seed file.
func LoadSeed(path string) ([]*models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return seed.Posts, nil
}

// Seed stores the posts of the seed file at path.
func (a *App) Seed(path string) (int, error) {
	posts, err := LoadSeed(path)
	if err != nil {
		return 0, err
	}
	return a.Posts.Seed(posts)
}
