package project

import (
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
)

// POMFile is the conventional descriptor name in a project basedir
const POMFile = "pom.xml"

// POM holds the parts of a pom.xml templating uses
type POM struct {
	GroupID        string
	ArtifactID     string
	Version        string
	Name           string
	Packaging      string
	BuildDirectory string
	SourceEncoding string
	Properties     map[string]string
}

// LoadPOM reads the descriptor at path. A missing file yields nil and no error.
func LoadPOM(fs afero.Fs, path string) (*POM, error) {
	logger := logging.GetLogger("project")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No pom.xml found")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", path).WithPath(path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid pom.xml '%s'", path).WithPath(path)
	}
	root := doc.SelectElement("project")
	if root == nil {
		return nil, errors.Newf(errors.ErrConfigParse, "'%s' has no <project> element", path).WithPath(path)
	}

	pom := &POM{
		GroupID:        text(root, "groupId"),
		ArtifactID:     text(root, "artifactId"),
		Version:        text(root, "version"),
		Name:           text(root, "name"),
		Packaging:      text(root, "packaging"),
		BuildDirectory: text(root, "build/directory"),
		Properties:     make(map[string]string),
	}
	// coordinates are inherited from the parent when omitted
	if pom.GroupID == "" {
		pom.GroupID = text(root, "parent/groupId")
	}
	if pom.Version == "" {
		pom.Version = text(root, "parent/version")
	}

	if props := root.SelectElement("properties"); props != nil {
		for _, el := range props.ChildElements() {
			pom.Properties[el.Tag] = strings.TrimSpace(el.Text())
		}
	}
	pom.SourceEncoding = pom.Properties["project.build.sourceEncoding"]

	logger.Debug().
		Str("path", path).
		Str("artifactId", pom.ArtifactID).
		Str("packaging", pom.Packaging).
		Int("properties", len(pom.Properties)).
		Msg("Loaded pom.xml")
	return pom, nil
}

func text(el *etree.Element, path string) string {
	found := el.FindElement("./" + path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// ApplyPOM copies every value the descriptor sets onto p
func (p *Project) ApplyPOM(pom *POM) {
	if pom == nil {
		return
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.GroupID, pom.GroupID)
	set(&p.ArtifactID, pom.ArtifactID)
	set(&p.Version, pom.Version)
	set(&p.Name, pom.Name)
	set(&p.Packaging, pom.Packaging)
	set(&p.BuildDirectory, pom.BuildDirectory)
	set(&p.SourceEncoding, pom.SourceEncoding)

	if p.Properties == nil {
		p.Properties = make(map[string]string)
	}
	for k, v := range pom.Properties {
		p.Properties[k] = v
	}
}
