package entity

import (
	"context"

	"github.com/maxovaroy/merlin-V2/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Community{},
		&User{},
		&Giveaway{},
		&GiveawayEntry{},
		&GiveawayManagerRole{},
	)
}
