package main

import (
	"context"
	"log"

	"github.com/SilviaMahr/StudyVerse/pkg/config"
	"github.com/SilviaMahr/StudyVerse/pkg/logger"
	"github.com/SilviaMahr/StudyVerse/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Seeds the relational tables the planner depends on: the curriculum,
// the ideal study progression and the known prerequisite chains. The
// vector table (studyverse_data) is filled by the catalog ingestion
// pipeline, not by this tool.

type curriculumSeed struct {
	name       string
	ects       float64
	hierarchy0 string
	hierarchy1 string
}

type idealPlanSeed struct {
	semesterNum  int
	name         string
	semesterType string
	ects         float64
}

type chainSeed struct {
	course   string
	requires string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := createTables(ctx, db); err != nil {
		appLogger.Fatal("Failed to create tables", zap.Error(err))
	}
	if err := seedCurriculum(ctx, db); err != nil {
		appLogger.Fatal("Failed to seed curriculum", zap.Error(err))
	}
	if err := seedIdealPlan(ctx, db, cfg.RAG.IdealPlanMode, cfg.RAG.IdealPlanStart); err != nil {
		appLogger.Fatal("Failed to seed ideal study plan", zap.Error(err))
	}
	if err := seedPrerequisiteChains(ctx, db); err != nil {
		appLogger.Fatal("Failed to seed prerequisite chains", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

func createTables(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lvas (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			ects DOUBLE PRECISION NOT NULL,
			hierarchielevel0 TEXT NOT NULL DEFAULT '',
			hierarchielevel1 TEXT NOT NULL DEFAULT '',
			hierarchielevel2 TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS completed_lvas (
			user_id UUID NOT NULL REFERENCES users(id),
			lva_id BIGINT NOT NULL REFERENCES lvas(id),
			PRIMARY KEY (user_id, lva_id)
		)`,
		`CREATE TABLE IF NOT EXISTS plannings (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			semester TEXT NOT NULL,
			target_ects INT NOT NULL,
			preferred_days TEXT[] NOT NULL DEFAULT '{}',
			mandatory_courses TEXT NOT NULL DEFAULT '',
			plan_json JSONB,
			planning_context TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_modified TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGSERIAL PRIMARY KEY,
			planning_id BIGINT NOT NULL REFERENCES plannings(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ideal_study_plan (
			id BIGSERIAL PRIMARY KEY,
			semester_num INT NOT NULL,
			lva_name TEXT NOT NULL,
			semester_type TEXT NOT NULL,
			ects DOUBLE PRECISION NOT NULL,
			study_mode TEXT NOT NULL,
			study_start_mode TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prerequisite_chains (
			id BIGSERIAL PRIMARY KEY,
			course_name TEXT NOT NULL,
			required_course TEXT NOT NULL,
			UNIQUE (course_name, required_course)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func seedCurriculum(ctx context.Context, db *pgxpool.Pool) error {
	courses := []curriculumSeed{
		{"VL Einführung in die Wirtschaftsinformatik", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"UE Einführung in die Wirtschaftsinformatik", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"VL Algorithmen und Datenstrukturen", 3.0, "Pflichtfach", "Informatik"},
		{"UE Algorithmen und Datenstrukturen", 3.0, "Pflichtfach", "Informatik"},
		{"VL Datenmodellierung", 3.0, "Pflichtfach", "Informatik"},
		{"UE Datenmodellierung", 3.0, "Pflichtfach", "Informatik"},
		{"VL Prozess- und Kommunikationsmodellierung", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"UE Prozess- und Kommunikationsmodellierung", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"KS Grundlagen der Betriebswirtschaftslehre", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"KS Grundlagen des integrierten Managements", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"KS Grundlagen der Kostenrechnung", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"KS Buchhaltung nach UGB", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"KS Einführung in Marketing", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"KS Grundlagen des Supply Chain Management", 3.0, "Pflichtfach", "Wirtschaftswissenschaften"},
		{"VL Einführung in die Informatik", 3.0, "Pflichtfach", "Informatik"},
		{"VL Operating Systems", 3.0, "Pflichtfach", "Informatik"},
		{"VL Einführung in die Softwareentwicklung", 3.0, "Pflichtfach", "Informatik"},
		{"UE Einführung in die Softwareentwicklung", 3.0, "Pflichtfach", "Informatik"},
		{"VL Vertiefung Softwareentwicklung", 3.0, "Pflichtfach", "Informatik"},
		{"UE Vertiefung Softwareentwicklung", 3.0, "Pflichtfach", "Informatik"},
		{"KV Mathematik und Logik", 6.0, "Pflichtfach", "Formale Grundlagen"},
		{"VL Formale Grundlagen der Wirtschaftsinformatik", 4.5, "Pflichtfach", "Formale Grundlagen"},
		{"UE Formale Grundlagen der Wirtschaftsinformatik", 1.5, "Pflichtfach", "Formale Grundlagen"},
		{"KV Statistik", 3.0, "Pflichtfach", "Formale Grundlagen"},
		{"KV Privatrecht für Wirtschaftsinformatik", 4.5, "Pflichtfach", "Recht"},
		{"KV Öffentliches Recht für Wirtschaftsinformatik", 1.5, "Pflichtfach", "Recht"},
		{"KS Kommunikative Fertigkeiten Englisch (B2)", 3.0, "Pflichtfach", "Sprachen"},
		{"SE Fachsprache Englisch", 3.0, "Pflichtfach", "Sprachen"},
		{"KS Soziale Auswirkungen der IT", 3.0, "Pflichtfach", "Gesellschaft"},
		{"KS Einführung in IKT, Gesellschaft, Gender und Diversity", 3.0, "Pflichtfach", "Gesellschaft"},
		{"VL IT-Project Engineering & Management", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"UE IT-Project Engineering & Management", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"VL Informationsmanagement", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"UE Informationsmanagement", 3.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"VL Software Engineering", 3.0, "Pflichtfach", "Software Engineering"},
		{"UE Software Engineering", 3.0, "Pflichtfach", "Software Engineering"},
		{"PR Software Engineering", 6.0, "Pflichtfach", "Software Engineering"},
		{"VL Data & Knowledge Engineering", 3.0, "Pflichtfach", "Data & Knowledge Engineering"},
		{"UE Data & Knowledge Engineering", 3.0, "Pflichtfach", "Data & Knowledge Engineering"},
		{"PR Data & Knowledge Engineering", 6.0, "Pflichtfach", "Data & Knowledge Engineering"},
		{"VL Communications Engineering", 3.0, "Pflichtfach", "Communications Engineering"},
		{"UE Communications Engineering", 3.0, "Pflichtfach", "Communications Engineering"},
		{"KT Communications Engineering (Kompetenztraining)", 3.0, "Pflichtfach", "Communications Engineering"},
		{"SE Anwendungen des Communications Engineering", 3.0, "Pflichtfach", "Communications Engineering"},
		{"PJ IT-Projekt Wirtschaftsinformatik", 6.0, "Pflichtfach", "Wirtschaftsinformatik"},
		{"PS Information Engineering", 3.0, "Pflichtfach", "Proseminare"},
		{"PS Software Engineering", 3.0, "Pflichtfach", "Proseminare"},
		{"PS Data & Knowledge Engineering", 3.0, "Pflichtfach", "Proseminare"},
		{"PS Communications Engineering", 3.0, "Pflichtfach", "Proseminare"},
		{"PE Spezielle Wirtschaftsinformatik - Theorie und Praxis, inklusive Bachelorarbeit", 12.0, "Pflichtfach", "Bachelorarbeit"},
		{"Wahlfach Wirtschaftsinformatik1", 3.0, "Wahlfach", "Wirtschaftsinformatik"},
		{"Wahlfach Wirtschaftsinformatik2", 3.0, "Wahlfach", "Wirtschaftsinformatik"},
		{"Wahlfach Wirtschaftswissenschaften1", 3.0, "Wahlfach", "Wirtschaftswissenschaften"},
		{"Wahlfach Wirtschaftswissenschaften2", 3.0, "Wahlfach", "Wirtschaftswissenschaften"},
		{"Freie Studienleistungen1", 3.0, "Freie Studienleistung", ""},
		{"Freie Studienleistungen2", 3.0, "Freie Studienleistung", ""},
		{"Freie Studienleistungen3", 3.0, "Freie Studienleistung", ""},
	}

	builder := squirrel.Insert("lvas").
		Columns("name", "ects", "hierarchielevel0", "hierarchielevel1").
		Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range courses {
		builder = builder.Values(c.name, c.ects, c.hierarchy0, c.hierarchy1)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return err
}

func seedIdealPlan(ctx context.Context, db *pgxpool.Pool, studyMode, startMode string) error {
	entries := []idealPlanSeed{
		{1, "VL Einführung in die Wirtschaftsinformatik", "WS", 3.0},
		{1, "UE Einführung in die Wirtschaftsinformatik", "WS", 3.0},
		{1, "KS Grundlagen der Betriebswirtschaftslehre", "WS", 3.0},
		{1, "VL Einführung in die Softwareentwicklung", "WS", 3.0},
		{1, "UE Einführung in die Softwareentwicklung", "WS", 3.0},
		{2, "VL Vertiefung Softwareentwicklung", "SS", 3.0},
		{2, "UE Vertiefung Softwareentwicklung", "SS", 3.0},
		{2, "VL Algorithmen und Datenstrukturen", "SS", 3.0},
		{2, "UE Algorithmen und Datenstrukturen", "SS", 3.0},
		{2, "KV Mathematik und Logik", "SS", 6.0},
		{3, "VL Datenmodellierung", "WS", 3.0},
		{3, "UE Datenmodellierung", "WS", 3.0},
		{3, "VL Prozess- und Kommunikationsmodellierung", "WS", 3.0},
		{3, "UE Prozess- und Kommunikationsmodellierung", "WS", 3.0},
		{3, "KV Statistik", "WS", 3.0},
		{4, "VL Software Engineering", "SS", 3.0},
		{4, "UE Software Engineering", "SS", 3.0},
		{4, "VL Data & Knowledge Engineering", "SS", 3.0},
		{4, "UE Data & Knowledge Engineering", "SS", 3.0},
		{4, "VL Informationsmanagement", "SS", 3.0},
		{5, "PR Software Engineering", "WS", 6.0},
		{5, "VL Communications Engineering", "WS", 3.0},
		{5, "UE Communications Engineering", "WS", 3.0},
		{5, "PS Software Engineering", "WS", 3.0},
		{6, "PJ IT-Projekt Wirtschaftsinformatik", "SS", 6.0},
		{6, "PE Spezielle Wirtschaftsinformatik - Theorie und Praxis, inklusive Bachelorarbeit", "SS", 12.0},
	}

	// Re-seeding replaces the plan for this mode wholesale.
	if _, err := db.Exec(ctx,
		"DELETE FROM ideal_study_plan WHERE study_mode = $1 AND study_start_mode = $2",
		studyMode, startMode,
	); err != nil {
		return err
	}

	builder := squirrel.Insert("ideal_study_plan").
		Columns("semester_num", "lva_name", "semester_type", "ects", "study_mode", "study_start_mode").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range entries {
		builder = builder.Values(e.semesterNum, e.name, e.semesterType, e.ects, studyMode, startMode)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return err
}

func seedPrerequisiteChains(ctx context.Context, db *pgxpool.Pool) error {
	chains := []chainSeed{
		{"Vertiefung Softwareentwicklung", "Einführung in die Softwareentwicklung"},
		{"Software Engineering", "Vertiefung Softwareentwicklung"},
		{"PR Software Engineering", "Software Engineering"},
		{"Data & Knowledge Engineering", "Datenmodellierung"},
		{"PR Data & Knowledge Engineering", "Data & Knowledge Engineering"},
		{"Anwendungen des Communications Engineering", "Communications Engineering"},
		{"PJ IT-Projekt Wirtschaftsinformatik", "IT-Project Engineering & Management"},
	}

	builder := squirrel.Insert("prerequisite_chains").
		Columns("course_name", "required_course").
		Suffix("ON CONFLICT (course_name, required_course) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range chains {
		builder = builder.Values(c.course, c.requires)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, sql, args...)
	return err
}
