package bank

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

// Load builds a bank from a YAML file or from every YAML file in a directory.
// An empty path yields the built-in bank.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat questions path: %w", err)
	}

	var questions []models.Question
	if info.IsDir() {
		questions, err = readDir(path)
	} else {
		questions, err = readFile(path)
	}
	if err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found in %s", path)
	}

	b, err := New(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to build question bank: %w", err)
	}
	return b, nil
}

// readDir concatenates question files in lexical file name order
func readDir(dir string) ([]models.Question, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	var questions []models.Question
	for _, file := range files {
		qs, err := readFile(file)
		if err != nil {
			return nil, err
		}
		slog.Debug("question file read", "file", file, "count", len(qs))
		questions = append(questions, qs...)
	}

	return questions, nil
}

// readFile parses a single question file
func readFile(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var qf questionsFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", filepath.Base(path), err)
	}

	questions := make([]models.Question, 0, len(qf.Questions))
	for _, q := range qf.Questions {
		questions = append(questions, models.Question{
			Text:          strings.TrimSpace(q.Text),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			FunFact:       strings.TrimSpace(q.FunFact),
			Difficulty:    models.Difficulty(q.Difficulty),
			Hint:          strings.TrimSpace(q.Hint),
		})
	}

	return questions, nil
}

// --- YAML file structs ---

// questionsFile represents the YAML structure of a question file
type questionsFile struct {
	Questions []questionEntry `yaml:"questions"`
}

type questionEntry struct {
	Text          string   `yaml:"text"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correct_answer"`
	FunFact       string   `yaml:"fun_fact"`
	Difficulty    string   `yaml:"difficulty"`
	Hint          string   `yaml:"hint"`
}
