package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/logging"
	"todo/internal/task"
)

// schemaURL names the embedded schema resource.
const schemaURL = "todos.schema.json"

// schemaJSON describes the persisted todo file: an array of task objects.
// Unknown keys are tolerated so files written by other tools still load.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text"],
    "properties": {
      "id": {"type": "string"},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var fileSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add todo schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile todo schema: %v", err))
	}
	return schema
}

// Load reads the task list stored at path.
//
// A missing file yields an empty list. A file that cannot be read, is not
// JSON, or does not match the expected structure also yields an empty list;
// that case is logged as a warning because the data in it is about to be
// shadowed by the next save. Load never returns an error.
func Load(path string, logger *log.Logger) []task.Task {
	if logger == nil {
		logger = logging.Discard()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no todo file yet", "path", path)
		} else {
			logger.Warn("todo file unreadable, starting empty", "path", path, "err", err)
		}
		return []task.Task{}
	}

	tasks, err := decode(data)
	if err != nil {
		logger.Warn("todo file corrupt, starting empty", "path", path, "err", err)
		return []task.Task{}
	}

	normalizeIDs(tasks, uuid.NewString)
	logger.Debug("loaded todo file", "path", path, "tasks", len(tasks))
	return tasks
}

// decode parses and validates file contents.
func decode(data []byte) ([]task.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	if err := fileSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate todo file: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// normalizeIDs assigns a fresh ID to every task that has none or repeats an
// earlier one.
func normalizeIDs(tasks []task.Task, newID func() string) {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		id := tasks[i].ID
		if id == "" || seen[id] {
			id = newID()
			tasks[i].ID = id
		}
		seen[id] = true
	}
}

// Save overwrites path with the full task list as a JSON array.
// The file is rewritten in place; there is no temp file or backup.
func Save(path string, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save todo file: %w", err)
	}
	return nil
}
