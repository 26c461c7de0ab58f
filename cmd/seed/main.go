package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/edulearn-backend/internal/app"
	"github.com/yungbote/edulearn-backend/internal/seed"
)

func main() {
	var path string
	flag.StringVar(&path, "file", "cmd/seed/catalog.yaml", "catalog fixture to load")
	flag.Parse()

	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("open catalog: %v\n", err)
		os.Exit(1)
	}
	cat, err := seed.Parse(f)
	_ = f.Close()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	s := application.Services
	rep, err := seed.Apply(ctx, application.Log, seed.Services{
		Auth:           s.Auth,
		Course:         s.Course,
		Classroom:      s.Classroom,
		Exercise:       s.Exercise,
		ExamDefinition: s.ExamDefinition,
		ExamQuestion:   s.ExamQuestion,
	}, cat)
	if err != nil {
		application.Log.Error("Seed failed", "error", err)
		application.Close()
		os.Exit(1)
	}
	fmt.Printf("professors=%d skipped=%d courses=%d classrooms=%d exercises=%d exams=%d questions=%d\n",
		rep.Professors, rep.Skipped, rep.Courses, rep.Classrooms, rep.Exercises, rep.Exams, rep.Questions)
}
