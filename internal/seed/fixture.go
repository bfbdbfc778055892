// Package seed loads YAML fixtures of users and their job postings and
// writes them through the auth and job services.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is the root document of a seed file.
type Fixture struct {
	Users []User `yaml:"users"`
}

// User is an account to register, together with the jobs it posts.
type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Company  string `yaml:"company"`
	Jobs     []Job  `yaml:"jobs"`
}

// Job is a posting created on behalf of its user. Company defaults to the
// user's company.
type Job struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Company      string   `yaml:"company"`
	Location     string   `yaml:"location"`
	JobType      string   `yaml:"jobType"`
	Salary       string   `yaml:"salary"`
	Requirements []string `yaml:"requirements"`
	Status       string   `yaml:"status"`
}

// Load decodes a fixture, rejecting unknown keys.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	return Load(file)
}
