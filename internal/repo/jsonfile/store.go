package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
)

// Проверка, что Store умеет делать резервные копии.
var _ ports.BackupMaker = (*Store)(nil)

// ErrDocumentEncode: документ в памяти нельзя сериализовать (например, сумма ±Inf).
var ErrDocumentEncode = errors.New("document cannot be encoded")

// Store: владелец JSON-документа на диске и его копии в памяти.
// Каждое изменение переписывает файл целиком. Изменения выполняются через Update,
// который держит мьютекс документа на всё время read-modify-write и записи на диск.
type Store struct {
	path string
	log  ports.Logger
	now  func() time.Time

	mu  sync.RWMutex
	doc *domain.Document

	backupMu   sync.Mutex
	lastBackup int64 // unix ms последнего бэкапа: имена файлов не повторяются
}

// NewStore: конструктор. Документ не загружается до вызова Initialize.
func NewStore(path string, log ports.Logger) *Store {
	return &Store{path: path, log: log, now: time.Now}
}

// Path: путь к файлу документа.
func (s *Store) Path() string { return s.path }

// Initialize: создаёт каталог, читает документ или создаёт документ по умолчанию,
// если файла нет или он пуст. Любая ошибка оборачивает domain.ErrStoreInit.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", domain.ErrStoreInit, err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: read %s: %v", domain.ErrStoreInit, s.path, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		doc := domain.NewDocument(s.now())
		if err := writeDocument(s.path, doc); err != nil {
			return fmt.Errorf("%w: write default document: %v", domain.ErrStoreInit, err)
		}
		s.doc = doc
		metrics.StoredOrders.Set(0)
		s.log.Infof(ctx, "database initialized with default data path=%s", s.path)
		return nil
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrStoreInit, s.path, err)
	}
	if doc.Orders == nil {
		doc.Orders = []domain.Order{}
	}
	if doc.Metadata.Version == "" {
		doc.Metadata.Version = domain.DocumentVersion
	}

	s.doc = &doc
	metrics.StoredOrders.Set(float64(len(doc.Orders)))
	s.log.Infof(ctx, "database loaded path=%s orders=%d", s.path, len(doc.Orders))
	return nil
}

// Document: живой документ в памяти. Вызывающий сам отвечает за синхронизацию;
// внутри пакета используются View/Update.
func (s *Store) Document() (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, domain.ErrStoreNotInitialized
	}
	return s.doc, nil
}

// View: выполняет fn под блокировкой на чтение.
func (s *Store) View(fn func(doc *domain.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return domain.ErrStoreNotInitialized
	}
	return fn(s.doc)
}

// Update: read-modify-write под эксклюзивной блокировкой.
// fn возвращает changed=false, если документ не менялся: тогда запись на диск не выполняется.
// При changed=true обновляется lastUpdated и документ переписывается целиком.
func (s *Store) Update(fn func(doc *domain.Document) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return domain.ErrStoreNotInitialized
	}

	prev := s.doc.Clone()
	changed, err := fn(s.doc)
	if err != nil || !changed {
		return err
	}

	// Документ, который нельзя сериализовать, не записался бы уже никогда:
	// такое изменение откатывается. Ошибка ввода-вывода оставляет память впереди файла.
	if err := s.touchLocked(); err != nil {
		if errors.Is(err, ErrDocumentEncode) {
			s.doc = prev
		}
		return err
	}
	metrics.StoredOrders.Set(float64(len(s.doc.Orders)))
	return nil
}

// Persist: переписывает весь документ на диск.
// При ошибке документ в памяти остаётся впереди файла до следующей успешной записи.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return domain.ErrStoreNotInitialized
	}
	return s.persistLocked()
}

// TouchMetadata: обновляет lastUpdated и сохраняет документ.
func (s *Store) TouchMetadata() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return domain.ErrStoreNotInitialized
	}
	return s.touchLocked()
}

// SnapshotToFile: пишет текущий документ в отдельный файл, не меняя исходный.
func (s *Store) SnapshotToFile(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return domain.ErrStoreNotInitialized
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	return writeDocument(path, s.doc)
}

// Backup: снимок в <каталог данных>/backup-<unix ms>.json; возвращает путь к файлу.
func (s *Store) Backup() (string, error) {
	s.backupMu.Lock()
	ms := s.now().UnixMilli()
	if ms <= s.lastBackup {
		ms = s.lastBackup + 1
	}
	s.lastBackup = ms
	s.backupMu.Unlock()

	name := "backup-" + strconv.FormatInt(ms, 10) + ".json"
	path := filepath.Join(filepath.Dir(s.path), name)

	if err := s.SnapshotToFile(path); err != nil {
		metrics.StoreBackups.WithLabelValues("error").Inc()
		return "", fmt.Errorf("backup: %w", err)
	}
	metrics.StoreBackups.WithLabelValues("ok").Inc()
	return path, nil
}

// ComputeStats: статистика по текущему состоянию, без побочных эффектов.
func (s *Store) ComputeStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return domain.Stats{}, domain.ErrStoreNotInitialized
	}
	return domain.ComputeStats(s.doc), nil
}

// Close: завершает жизненный цикл: дальнейшие обращения вернут ErrStoreNotInitialized.
// На диск ничего не пишется: каждое изменение уже сохранено.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = nil
	return nil
}

// ------вспомогательные функции------

func (s *Store) touchLocked() error {
	s.doc.Metadata.LastUpdated = domain.FormatTimestamp(s.now())
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	start := time.Now()
	err := writeDocument(s.path, s.doc)
	metrics.StorePersistDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.StorePersists.WithLabelValues("error").Inc()
		return fmt.Errorf("persist %s: %w", s.path, err)
	}
	metrics.StorePersists.WithLabelValues("ok").Inc()
	return nil
}

// writeDocument: пишет документ во временный файл рядом с целевым и переименовывает его,
// чтобы обрыв записи не оставил на месте документа обрезанный файл.
func writeDocument(path string, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentEncode, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
