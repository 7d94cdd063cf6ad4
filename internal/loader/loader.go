// Package loader reads the YAML data pool and resolves a profile into a
// renderable template context. Loading is split in two stages: each file
// is parsed and validated independently, then a profile's ID lists are
// resolved against the pools in a separate pass, so parse failures, data
// failures, and dangling references are reported as distinct problems.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Hermann-web/resumodel/internal/model"
	"github.com/Hermann-web/resumodel/internal/resumeerr"
)

// PersonalInfoFile is the one required file in a data directory.
const PersonalInfoFile = "personal_info.yml"

// Shared data filenames. Each is optional; an absent file simply
// contributes no records of its kind.
const (
	ExperiencesFile    = "experiences.yml"
	ProjectsFile       = "projects.yml"
	EducationFile      = "education.yml"
	CertificationsFile = "certifications.yml"
	ResearchPapersFile = "research_papers.yml"
	ClubsFile          = "clubs_and_associations.yml"
	HobbiesFile        = "hobbies.yml"
	ProfilesFile       = "profiles.yml"
)

// Loader reads resume data from one directory.
type Loader struct {
	dataDir string
	log     *zap.Logger
}

// New returns a Loader over dataDir. A nil logger disables logging.
func New(dataDir string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{dataDir: dataDir, log: log}
}

// PersonalInfo loads and validates personal_info.yml from the data
// directory. The file must exist and carry a top-level "personal_info"
// key.
func (l *Loader) PersonalInfo() (model.PersonalInfo, error) {
	path := filepath.Join(l.dataDir, PersonalInfoFile)
	doc, err := l.readDocument(path)
	if err != nil {
		return model.PersonalInfo{}, err
	}

	node, ok := doc["personal_info"]
	if !ok {
		return model.PersonalInfo{}, &resumeerr.DataError{
			File: PersonalInfoFile,
			Err:  errors.New(`missing top-level "personal_info" key`),
		}
	}

	var info model.PersonalInfo
	if err := strictDecode(&node, &info); err != nil {
		return model.PersonalInfo{}, &resumeerr.DataError{
			File: PersonalInfoFile,
			Err:  fmt.Errorf("personal_info: %w", err),
		}
	}
	if err := info.Validate(); err != nil {
		return model.PersonalInfo{}, &resumeerr.DataError{
			File: PersonalInfoFile,
			Err:  fmt.Errorf("personal_info: %w", err),
		}
	}

	l.log.Debug("loaded personal info", zap.String("name", info.Name))
	return info, nil
}

// SharedData loads every shared data file that exists in the data
// directory. Absent files are skipped; a present file that is empty,
// not a mapping, or contains an invalid record is a data error and
// aborts the load.
func (l *Loader) SharedData() (*model.SharedData, error) {
	if _, err := os.Stat(l.dataDir); err != nil {
		return nil, &resumeerr.ConfigError{Path: l.dataDir, Err: fmt.Errorf("data directory: %w", err)}
	}

	shared := model.NewSharedData()
	if err := loadPool(l, ExperiencesFile, "experiences", shared.Experiences); err != nil {
		return nil, err
	}
	if err := loadPool(l, ProjectsFile, "projects", shared.Projects); err != nil {
		return nil, err
	}
	if err := loadPool(l, EducationFile, "education", shared.Education); err != nil {
		return nil, err
	}
	if err := loadPool(l, CertificationsFile, "certifications", shared.Certifications); err != nil {
		return nil, err
	}
	if err := loadPool(l, ResearchPapersFile, "research_papers", shared.ResearchPapers); err != nil {
		return nil, err
	}
	if err := loadPool(l, ClubsFile, "clubs_and_associations", shared.ClubsAndAssociations); err != nil {
		return nil, err
	}
	if err := loadPool(l, HobbiesFile, "hobbies", shared.Hobbies); err != nil {
		return nil, err
	}
	if err := loadPool(l, ProfilesFile, "profiles", shared.Profiles); err != nil {
		return nil, err
	}

	l.log.Debug("loaded shared data",
		zap.Int("experiences", len(shared.Experiences)),
		zap.Int("projects", len(shared.Projects)),
		zap.Int("education", len(shared.Education)),
		zap.Int("certifications", len(shared.Certifications)),
		zap.Int("research_papers", len(shared.ResearchPapers)),
		zap.Int("clubs_and_associations", len(shared.ClubsAndAssociations)),
		zap.Int("hobbies", len(shared.Hobbies)),
		zap.Int("profiles", len(shared.Profiles)))
	return shared, nil
}

// BuildContext resolves the named profile's ID lists against the shared
// pools and returns the validated template context. The first
// unresolvable ID aborts the build; no partial context is returned.
func (l *Loader) BuildContext(personal model.PersonalInfo, profileName string, shared *model.SharedData) (model.TemplateContext, error) {
	profile, ok := shared.Profiles[profileName]
	if !ok {
		return model.TemplateContext{}, &resumeerr.DataError{
			Profile: profileName,
			Err:     errors.New("not found in shared data"),
		}
	}

	experiences, err := resolve(profileName, "experiences", profile.Experiences, shared.Experiences)
	if err != nil {
		return model.TemplateContext{}, err
	}
	projects, err := resolve(profileName, "projects", profile.Projects, shared.Projects)
	if err != nil {
		return model.TemplateContext{}, err
	}
	education, err := resolve(profileName, "education", profile.Education, shared.Education)
	if err != nil {
		return model.TemplateContext{}, err
	}
	certifications, err := resolve(profileName, "certifications", profile.Certifications, shared.Certifications)
	if err != nil {
		return model.TemplateContext{}, err
	}
	papers, err := resolve(profileName, "research_papers", profile.ResearchPapers, shared.ResearchPapers)
	if err != nil {
		return model.TemplateContext{}, err
	}
	clubs, err := resolve(profileName, "clubs_and_associations", profile.ClubsAndAssociations, shared.ClubsAndAssociations)
	if err != nil {
		return model.TemplateContext{}, err
	}
	hobbies, err := resolve(profileName, "hobbies", profile.Hobbies, shared.Hobbies)
	if err != nil {
		return model.TemplateContext{}, err
	}

	ctx := model.TemplateContext{
		PersonalInfo: personal,
		Title:        profile.Title,
		Summary:      profile.Summary,
		Sections: model.Sections{
			Skills:               profile.Skills,
			Experiences:          experiences,
			Projects:             projects,
			Education:            education,
			Certifications:       certifications,
			ResearchPapers:       papers,
			ClubsAndAssociations: clubs,
			Hobbies:              hobbies,
		},
	}
	if err := ctx.Validate(); err != nil {
		return model.TemplateContext{}, &resumeerr.DataError{Profile: profileName, Err: err}
	}

	if l.log.Core().Enabled(zapcore.DebugLevel) {
		l.log.Debug("resolved template context",
			zap.String("profile", profileName),
			zap.String("context", spew.Sdump(ctx)))
	}
	return ctx, nil
}

// resolve expands a profile's ID list against one shared pool,
// preserving list order. One hop, no transitive references.
func resolve[T any](profileName, section string, ids []string, pool map[string]T) ([]T, error) {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		rec, ok := pool[id]
		if !ok {
			return nil, &resumeerr.DataError{
				Profile: profileName,
				Ref:     id,
				Err:     fmt.Errorf("%s: unknown reference %q", section, id),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// loadPool reads one shared data file into its pool. Iteration follows
// document order so the first offending record in the file is the one
// reported.
func loadPool[T interface{ Validate() error }](l *Loader, filename, key string, dst map[string]T) error {
	path := filepath.Join(l.dataDir, filename)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			l.log.Debug("shared data file absent, skipping", zap.String("file", filename))
			return nil
		}
		return &resumeerr.ConfigError{Path: path, Err: err}
	}

	doc, err := l.readDocument(path)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		return &resumeerr.DataError{File: filename, Err: errors.New("file is empty")}
	}

	node, ok := doc[key]
	if !ok {
		return &resumeerr.DataError{File: filename, Err: fmt.Errorf("missing top-level %q key", key)}
	}
	if node.Kind != yaml.MappingNode {
		return &resumeerr.DataError{File: filename, Err: fmt.Errorf("%q must be a mapping from ID to record", key)}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		var rec T
		if err := strictDecode(node.Content[i+1], &rec); err != nil {
			return &resumeerr.DataError{File: filename, Err: fmt.Errorf("%s.%s: %w", key, id, err)}
		}
		if err := rec.Validate(); err != nil {
			return &resumeerr.DataError{File: filename, Err: fmt.Errorf("%s.%s: %w", key, id, err)}
		}
		dst[id] = rec
	}

	l.log.Debug("loaded shared data file",
		zap.String("file", filename),
		zap.Int("records", len(dst)))
	return nil
}

// readDocument parses one YAML file into its top-level mapping. A
// missing or unreadable file or a YAML syntax error is a config error;
// a file whose top level is not a mapping is a data error.
func (l *Loader) readDocument(path string) (map[string]yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &resumeerr.ConfigError{Path: path, Err: err}
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &resumeerr.DataError{File: filepath.Base(path), Err: errors.New("top level must be a mapping")}
		}
		return nil, &resumeerr.ConfigError{Path: path, Err: fmt.Errorf("invalid YAML: %w", err)}
	}
	return doc, nil
}

// strictDecode decodes a YAML node rejecting unknown fields. yaml.Node
// decoding has no strict mode of its own, so the node is round-tripped
// through an encoder first.
func strictDecode(node *yaml.Node, out any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}
