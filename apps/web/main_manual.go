package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoweb "github.com/trezcool/gradebook/apps/web/echo"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/gradebook"
	"github.com/trezcool/gradebook/core/student"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
	sqlxrepos "github.com/trezcool/gradebook/storage/database/sqlx"
)

func startManual(inmem bool) {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB & repos
	var (
		pool           core.ConnPool
		studentRepo    student.Repository
		assignmentRepo assignment.Repository
		gradeRepo      grade.Repository
	)
	if inmem {
		memDB := inmemdb.NewDB()
		studentRepo = inmemdb.NewStudentRepository(memDB)
		assignmentRepo = inmemdb.NewAssignmentRepository(memDB)
		gradeRepo = inmemdb.NewGradeRepository(memDB)
	} else {
		db, err := setUpDB(conf)
		if err != nil {
			dbLogger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				dbLogger.Error("Failed to close", err)
			}
		}()

		pool = db
		studentRepo = sqlxrepos.NewStudentRepository(db)
		assignmentRepo = sqlxrepos.NewAssignmentRepository(db)
		gradeRepo = sqlxrepos.NewGradeRepository(db)
	}

	// set up services
	studentSvc := student.NewService(studentRepo)
	assignmentSvc := assignment.NewService(assignmentRepo)
	gradeSvc := grade.NewService(gradeRepo)
	gradebookSvc := gradebook.NewService(studentSvc, assignmentSvc, gradeSvc)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Initialize App

	server, err := echoweb.NewServer(echoweb.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Pool:          pool,
		StudentSvc:    studentSvc,
		AssignmentSvc: assignmentSvc,
		GradebookSvc:  gradebookSvc,
		Validate:      validate,
		Translator:    translator,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	serve(conf, logger, server)
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
