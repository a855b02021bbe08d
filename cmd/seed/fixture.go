package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"explorer/internal/repository/postgres"

	_ "embed"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Fixture is the root of a seed definition.
type Fixture struct {
	Folders []FolderSpec `yaml:"folders"`
}

// FolderSpec is one folder with its nested contents.
type FolderSpec struct {
	Name     string        `yaml:"name"`
	Children []FolderSpec  `yaml:"children"`
	Files    []FileSpec    `yaml:"files"`
	Generate *GenerateSpec `yaml:"generate"`
}

// FileSpec is one file inside a folder.
type FileSpec struct {
	Name     string  `yaml:"name"`
	Size     *int64  `yaml:"size"`
	MimeType *string `yaml:"mimeType"`
}

// GenerateSpec produces bulk numbered folders and files, used to seed
// enough rows to exercise paginated search.
type GenerateSpec struct {
	Folders *GenerateFolders `yaml:"folders"`
	Files   []GenerateFiles  `yaml:"files"`
}

type GenerateFolders struct {
	Prefix string `yaml:"prefix"`
	Count  int    `yaml:"count"`
	Pad    int    `yaml:"pad"`
}

type GenerateFiles struct {
	Prefix   string `yaml:"prefix"`
	Suffix   string `yaml:"suffix"`
	Count    int    `yaml:"count"`
	Pad      int    `yaml:"pad"`
	MimeType string `yaml:"mimeType"`
	BaseSize int64  `yaml:"baseSize"`
	SizeStep int64  `yaml:"sizeStep"`
}

// loadFixture reads a fixture from path, or the embedded default when path
// is empty.
func loadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("unmarshal fixture: %w", err)
	}

	return &fixture, nil
}

// seeder inserts a fixture into the folders/files tables.
type seeder struct {
	pool    *pgxpool.Pool
	tables  *postgres.TableNames
	folders int
	files   int
}

func (s *seeder) seed(ctx context.Context, fixture *Fixture) error {
	for _, spec := range fixture.Folders {
		if err := s.insertFolder(ctx, spec, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) insertFolder(ctx context.Context, spec FolderSpec, parentID *int64) error {
	id, err := s.createFolder(ctx, spec.Name, parentID)
	if err != nil {
		return err
	}

	for _, child := range spec.Children {
		if err := s.insertFolder(ctx, child, &id); err != nil {
			return err
		}
	}

	for _, file := range spec.Files {
		if err := s.createFile(ctx, id, file.Name, file.Size, file.MimeType); err != nil {
			return err
		}
	}

	if spec.Generate != nil {
		if err := s.generate(ctx, id, spec.Generate); err != nil {
			return err
		}
	}

	return nil
}

func (s *seeder) generate(ctx context.Context, folderID int64, gen *GenerateSpec) error {
	if gen.Folders != nil {
		for i := 1; i <= gen.Folders.Count; i++ {
			name := fmt.Sprintf("%s%0*d", gen.Folders.Prefix, gen.Folders.Pad, i)
			if _, err := s.createFolder(ctx, name, &folderID); err != nil {
				return err
			}
		}
	}

	for _, gf := range gen.Files {
		for i := 1; i <= gf.Count; i++ {
			name := fmt.Sprintf("%s%0*d%s", gf.Prefix, gf.Pad, i, gf.Suffix)
			size := gf.BaseSize + int64(i)*gf.SizeStep
			mime := gf.MimeType
			if err := s.createFile(ctx, folderID, name, &size, &mime); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *seeder) createFolder(ctx context.Context, name string, parentID *int64) (int64, error) {
	query := `
		INSERT INTO ` + s.tables.Folders + ` (parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`

	var id int64
	if err := s.pool.QueryRow(ctx, query, parentID, name, time.Now()).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert folder %q: %w", name, err)
	}

	s.folders++
	return id, nil
}

func (s *seeder) createFile(ctx context.Context, folderID int64, name string, size *int64, mimeType *string) error {
	query := `
		INSERT INTO ` + s.tables.Files + ` (folder_id, name, size, mime_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`

	if _, err := s.pool.Exec(ctx, query, folderID, name, size, mimeType, time.Now()); err != nil {
		return fmt.Errorf("insert file %q: %w", name, err)
	}

	s.files++
	return nil
}
