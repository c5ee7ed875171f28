package cmd

import (
	"fmt"

	"github.com/ellard/glosa/internal/apiclient"
	"github.com/ellard/glosa/internal/config"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/output"
)

// currentCourse returns the configured course pair, or an error telling
// the user how to pick one.
func currentCourse() (config.Course, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Course{}, err
	}
	if cfg.Course.L1 == "" || cfg.Course.L2 == "" {
		output.Error("no course selected (run: glosa course set <l1> <l2>)")
		return config.Course{}, fmt.Errorf("no course selected")
	}
	return cfg.Course, nil
}

// openCourseDB opens the database for the configured course.
func openCourseDB() (*db.DB, config.Course, error) {
	course, err := currentCourse()
	if err != nil {
		return nil, course, err
	}
	dataDir, err := db.DataDir()
	if err != nil {
		return nil, course, err
	}
	database, err := db.Open(db.CoursePath(dataDir, course.L1, course.L2))
	if err != nil {
		output.Error("open database: %v", err)
		return nil, course, err
	}
	return database, course, nil
}

// newClient builds an API client from config.
func newClient() *apiclient.Client {
	client := apiclient.New(config.ServerURL(), config.Token())
	if creds, err := config.LoadAuth(); err == nil && creds != nil {
		client.CSRFToken = creds.CSRFToken
	}
	return client
}
