package mysql

import (
	"database/sql"
	"fmt"

	appDb "github.com/neighborly/neighborly-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MysqlDB struct {
	*ReportDB
	*ModerationDB
	*UserDB
	sess  db.Session
	sqlDB *sql.DB
}

type Config struct {
	User string
	Pass string
	Host string
	Name string
}

func GetDatabase(config *Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
			config.User, config.Pass, config.Host, config.Name))
	if err != nil {
		return nil, err
	}

	// TODO: Move to config
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MysqlDB{
		ReportDB:     getReportDB(sess),
		ModerationDB: getModerationDB(sess),
		UserDB:       getUserDB(sess),
		sess:         sess,
		sqlDB:        sqlDB,
	}, nil
}

func (mdb *MysqlDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MysqlDB) Close() error {
	return mdb.sess.Close()
}
