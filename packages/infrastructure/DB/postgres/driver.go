package postgres

import (
	"context"
	"hoa/packages/infrastructure/DB/postgres/connection"
	"hoa/packages/infrastructure/DB/postgres/executor"
	log "hoa/packages/infrastructure/DB/postgres/logger"
	commenttable "hoa/packages/infrastructure/DB/postgres/table/comment"
	eventtable "hoa/packages/infrastructure/DB/postgres/table/event"
	meetingtable "hoa/packages/infrastructure/DB/postgres/table/meeting"
	minutestable "hoa/packages/infrastructure/DB/postgres/table/minutes"
	posttable "hoa/packages/infrastructure/DB/postgres/table/post"
	usertable "hoa/packages/infrastructure/DB/postgres/table/user"
	"hoa/packages/infrastructure/DB/postgres/transaction"
)

type Driver struct {
	conManager *connection.Manager

	Users    *usertable.Manager
	Events   *eventtable.Manager
	Posts    *posttable.Manager
	Comments *commenttable.Manager
	Meetings *meetingtable.Manager
	Minutes  *minutestable.Manager
}

func InitDriver() *Driver {
	conManager := new(connection.Manager)

	executor.Init(conManager)
	transaction.Init(conManager)

	return &Driver{
		conManager: conManager,
		Users:      usertable.NewManager(),
		Events:     eventtable.NewManager(),
		Posts:      posttable.NewManager(),
		Comments:   commenttable.NewManager(),
		Meetings:   meetingtable.NewManager(),
		Minutes:    minutestable.NewManager(),
	}
}

func (d *Driver) Connect(ctx context.Context) {
	log.DB.Info("Connecting to DB...", nil)

	d.conManager.Connect(ctx)

	log.DB.Info("Connecting to DB: OK", nil)
}

func (d *Driver) Disconnect() error {
	return d.conManager.Disconnect()
}

func (d *Driver) Migrate() *Migrate {
	if !d.conManager.IsConnected() {
		log.Migration.Panic("Failed to init migrations", "DB isn't connected", nil)
	}
	return &Migrate{config: d.conManager.PrimaryConfig}
}
