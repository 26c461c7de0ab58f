package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/edulearn-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.All()...)
}

// EnsureIndexes creates the composite and partial indexes that back the
// uniqueness rules. The statements are valid on Postgres and SQLite.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_exercise_answer_student_exercise",
			sql:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_exercise_answer_student_exercise ON exercise_answer(student_id, exercise_id);`,
		},
		{
			name: "idx_exam_course_evaluation",
			sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_exam_course_evaluation
				ON exam(student_id, course_id)
				WHERE exam_definition_id IS NULL;`,
		},
		{
			name: "idx_exam_definition_attempt",
			sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_exam_definition_attempt
				ON exam(student_id, exam_definition_id)
				WHERE exam_definition_id IS NOT NULL;`,
		},
		{
			name: "idx_classroom_course_sequence",
			sql:  `CREATE INDEX IF NOT EXISTS idx_classroom_course_sequence ON classroom(course_id, sequence);`,
		},
		{
			name: "idx_exam_question_definition_sequence",
			sql:  `CREATE INDEX IF NOT EXISTS idx_exam_question_definition_sequence ON exam_question(exam_definition_id, sequence);`,
		},
		{
			name: "idx_comment_course_hour",
			sql:  `CREATE INDEX IF NOT EXISTS idx_comment_course_hour ON comment(course_id, hour_date);`,
		},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
