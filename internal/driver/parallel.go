package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"kaleido/internal/ast"
	"kaleido/internal/diag"
	"kaleido/internal/source"
)

// SourceExt is the extension ParseDir looks for.
const SourceExt = ".kal"

// ParseDirOptions configure ParseDir.
type ParseDirOptions struct {
	ParseOptions
	Jobs int // <= 0: GOMAXPROCS
	// Events, if set, receives a FileEvent per status change. ParseDir does not close it.
	Events chan<- FileEvent
	Cache  *DiskCache
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path    string        // путь к файлу
	Source  source.FileID // ID файла в FileSet
	FileID  ast.FileID    // ID файла в AST; невалиден при попадании в кэш
	Builder *ast.Builder  // nil при попадании в кэш или ошибке загрузки
	Bag     *diag.Bag
	Summary *Summary
	Cached  bool
	// LoadErr is set when the file could not be read; nothing else is filled then.
	LoadErr error
}

// ListSourceFiles возвращает отсортированный список всех *.kal файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все *.kal файлы в директории параллельно.
// Файлы загружаются в FileSet последовательно: FileSet не потокобезопасен.
// Результаты идут в порядке ListSourceFiles.
func ParseDir(ctx context.Context, dir string, opts ParseDirOptions) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	results := make([]ParseDirResult, len(files))
	loaded := make([]*source.File, len(files))
	done := opts.Timer.Track("load")
	for i, path := range files {
		results[i].Path = path
		emit(ctx, opts.Events, FileEvent{Path: path, Status: FileQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// остальные файлы продолжаются
			results[i].LoadErr = err
			continue
		}
		results[i].Source = fileID
		loaded[i] = fileSet.Get(fileID)
	}
	done(fmt.Sprintf("%d files", len(files)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if loaded[i] == nil {
			emit(ctx, opts.Events, FileEvent{Path: files[i], Status: FileFailed, Err: results[i].LoadErr})
			continue
		}
		g.Go(func() error {
			return parseOne(gctx, loaded[i], &results[i], opts)
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func parseOne(ctx context.Context, file *source.File, out *ParseDirResult, opts ParseDirOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := KeyFor(file, opts.Ops)
	if opts.Cache != nil {
		var cached Summary
		ok, err := opts.Cache.Get(key, &cached)
		// битая запись кэша: просто промах
		if err == nil && ok && cached.Hash == file.Hash {
			out.Summary = &cached
			out.Cached = true
			out.Bag = cached.Bag(file.ID, opts.MaxDiagnostics)
			emit(ctx, opts.Events, FileEvent{Path: out.Path, Status: FileCached, Items: len(cached.Items), Errors: cached.Errors})
			return nil
		}
	}

	emit(ctx, opts.Events, FileEvent{Path: out.Path, Status: FileParsing})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parseSource(ctx, file, builder, opts.ParseOptions)
	if err != nil {
		emit(ctx, opts.Events, FileEvent{Path: out.Path, Status: FileFailed, Err: err})
		return err
	}
	out.Builder = builder
	out.FileID = res.File
	out.Bag = res.Bag
	out.Summary = Summarize(file, builder, res.File, res.Bag, res.Errors)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, out.Summary); err != nil {
			return fmt.Errorf("cache %s: %w", out.Path, err)
		}
	}
	emit(ctx, opts.Events, FileEvent{Path: out.Path, Status: FileDone, Items: len(out.Summary.Items), Errors: res.Errors})
	return nil
}

func emit(ctx context.Context, ch chan<- FileEvent, ev FileEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
