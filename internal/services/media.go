package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/edulearn-backend/internal/data/aggregates"
	"github.com/yungbote/edulearn-backend/internal/data/repos"
	types "github.com/yungbote/edulearn-backend/internal/domain"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/edulearn-backend/internal/pkg/errors"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

// ObjectStore is the blob storage the media service writes to. Both the GCS
// bucket and the local disk store satisfy it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

var (
	videoExtensions   = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".m4v": true}
	contentExtensions = map[string]bool{
		".pdf": true, ".mp4": true, ".webm": true, ".mov": true, ".m4v": true,
		".png": true, ".jpg": true, ".jpeg": true, ".zip": true, ".pptx": true, ".docx": true, ".txt": true, ".md": true,
	}
)

type MediaService interface {
	UploadPresentationVideo(ctx context.Context, professorID, courseID int64, filename string, r io.Reader) (*types.Course, error)
	UploadClassroomContent(ctx context.Context, professorID, classroomID int64, filename string, r io.Reader) (*types.Classroom, error)
}

type mediaService struct {
	w             writer
	log           *logger.Logger
	store         ObjectStore
	courseRepo    repos.CourseRepo
	classroomRepo repos.ClassroomRepo
	own           courseOwnership
}

func NewMediaService(base aggregates.BaseDeps, log *logger.Logger, store ObjectStore, courseRepo repos.CourseRepo, classroomRepo repos.ClassroomRepo) MediaService {
	serviceLog := log.With("service", "MediaService")
	return &mediaService{
		w:             newWriter(base, serviceLog),
		log:           serviceLog,
		store:         store,
		courseRepo:    courseRepo,
		classroomRepo: classroomRepo,
		own:           courseOwnership{courses: courseRepo, classrooms: classroomRepo},
	}
}

func mediaExtension(filename string, allowed map[string]bool) (string, error) {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if ext == "" || !allowed[ext] {
		return "", apperr.InvalidInputf("unsupported file type %q", ext)
	}
	return ext, nil
}

func presentationVideoKey(courseID int64, ext string) string {
	return fmt.Sprintf("courses/%d/presentation/%s%s", courseID, uuid.NewString(), ext)
}

func classroomContentKey(courseID, classroomID int64, ext string) string {
	return fmt.Sprintf("courses/%d/classrooms/%d/%s%s", courseID, classroomID, uuid.NewString(), ext)
}

func (s *mediaService) UploadPresentationVideo(ctx context.Context, professorID, courseID int64, filename string, r io.Reader) (*types.Course, error) {
	const op = "MediaService.UploadPresentationVideo"
	if r == nil {
		return nil, apperr.InvalidInput("file is required")
	}
	ext, err := mediaExtension(filename, videoExtensions)
	if err != nil {
		return nil, err
	}
	// Checked again inside the write transaction.
	if _, err := s.own.ownedCourse(read(ctx), courseID, professorID); err != nil {
		return nil, mapRead(s.log, op, err, "course_id", courseID)
	}
	key := presentationVideoKey(courseID, ext)
	if err := s.store.Upload(ctx, key, r); err != nil {
		s.log.Error("upload presentation video", "course_id", courseID, "key", key, "error", err)
		return nil, apperr.Persistence(op, err)
	}
	url := s.store.PublicURL(key)

	var out *types.Course
	err = s.w.do(ctx, op, func(dbc dbctx.Context) error {
		c, err := s.own.ownedCourse(dbc, courseID, professorID)
		if err != nil {
			return err
		}
		now := nowUTC()
		ok, err := s.courseRepo.UpdatePresentationVideo(dbc, courseID, url, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence(op, nil)
		}
		c.PresentationVideoURL = &url
		c.UpdateDate = &now
		out = c
		return nil
	}, "course_id", courseID, "professor_id", professorID)
	if err != nil {
		s.discard(key)
		return nil, err
	}
	return out, nil
}

func (s *mediaService) UploadClassroomContent(ctx context.Context, professorID, classroomID int64, filename string, r io.Reader) (*types.Classroom, error) {
	const op = "MediaService.UploadClassroomContent"
	if r == nil {
		return nil, apperr.InvalidInput("file is required")
	}
	ext, err := mediaExtension(filename, contentExtensions)
	if err != nil {
		return nil, err
	}
	_, c, err := s.own.ownedClassroom(read(ctx), classroomID, professorID)
	if err != nil {
		return nil, mapRead(s.log, op, err, "classroom_id", classroomID)
	}
	key := classroomContentKey(c.ID, classroomID, ext)
	if err := s.store.Upload(ctx, key, r); err != nil {
		s.log.Error("upload classroom content", "classroom_id", classroomID, "key", key, "error", err)
		return nil, apperr.Persistence(op, err)
	}
	url := s.store.PublicURL(key)

	var out *types.Classroom
	err = s.w.do(ctx, op, func(dbc dbctx.Context) error {
		cl, _, err := s.own.ownedClassroom(dbc, classroomID, professorID)
		if err != nil {
			return err
		}
		ok, err := s.classroomRepo.UpdateContentURL(dbc, classroomID, url)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence(op, nil)
		}
		cl.ContentURL = &url
		out = cl
		return nil
	}, "classroom_id", classroomID, "professor_id", professorID)
	if err != nil {
		s.discard(key)
		return nil, err
	}
	return out, nil
}

// discard removes an object whose database write did not commit.
func (s *mediaService) discard(key string) {
	if err := s.store.Delete(context.Background(), key); err != nil {
		s.log.Warn("discard orphaned object", "key", key, "error", err)
	}
}
