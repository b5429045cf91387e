package initializers

import (
	"talentflow-backend/config"
	"talentflow-backend/db"
)

func InitDBConnection() {
	dbConf := config.Conf.Database
	dsn := dbConf.SqlitePath
	if dbConf.Driver == db.DriverPostgres {
		dsn = db.PostgresDSN(dbConf.Host, dbConf.Port, dbConf.Name, dbConf.User, dbConf.Password)
	}
	err := db.Connect(dbConf.Driver, dsn, *dbConf.DebugMode, *dbConf.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload()
}
