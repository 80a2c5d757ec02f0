package DB

import (
	"context"
	"hoa/packages/core/comment"
	"hoa/packages/core/event"
	"hoa/packages/core/meeting"
	"hoa/packages/core/minutes"
	"hoa/packages/core/post"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres"
)

type connector interface {
	Connect(ctx context.Context)
	Disconnect() error
}

type database struct {
	connector

	Users    user.Repository
	Events   event.Repository
	Posts    post.Repository
	Comments comment.Repository
	Meetings meeting.Repository
	Minutes  minutes.Repository

	driver *postgres.Driver
}

func (d *database) Migrate() *postgres.Migrate {
	return d.driver.Migrate()
}

func newDatabase() *database {
	driver := postgres.InitDriver()

	return &database{
		connector: driver,
		Users:     driver.Users,
		Events:    driver.Events,
		Posts:     driver.Posts,
		Comments:  driver.Comments,
		Meetings:  driver.Meetings,
		Minutes:   driver.Minutes,
		driver:    driver,
	}
}

// Implements all entities "Repository" interfaces
var Database = newDatabase()
