package db

import (
	"talentflow-backend/config"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillDemoData()
}

func fillDemoData() {
	seedConf := config.Conf.Seed
	if !*seedConf.Enabled {
		log.Info("заполнение демо-данными отключено")
		return
	}
	if _, err := Seed(DB, seedConf.Jobs, seedConf.Candidates, seedConf.RandSeed); err != nil {
		log.WithError(err).Error("ошибка заполнения демо-данными")
	}
}
