package api

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/classify"
	"github.com/aezell/branchkit/internal/content"
	"github.com/aezell/branchkit/internal/diff"
	"github.com/aezell/branchkit/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Shared request shape ---

// changeRequest carries a change set either as a unified diff or as an
// explicit file list.
type changeRequest struct {
	Diff     string     `json:"diff,omitempty"`
	Files    []fileJSON `json:"files,omitempty"`
	Subjects []string   `json:"subjects,omitempty"`
}

type fileJSON struct {
	Path     string `json:"path"`
	OldPath  string `json:"old_path,omitempty"`
	Status   string `json:"status"`
	Category string `json:"category,omitempty"`
}

type diffStatsJSON struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

func (req changeRequest) changeSet() (*changes.Set, error) {
	if req.Diff != "" {
		ds, err := diff.Parse(req.Diff)
		if err != nil {
			return nil, err
		}
		return ds.ChangeSet(), nil
	}
	set := changes.NewSet()
	for _, f := range req.Files {
		if f.Path == "" {
			return nil, errors.New("file path is required")
		}
		status, ok := model.ParseChangeStatus(f.Status)
		if !ok {
			return nil, errors.Newf("unknown status %q for %s", f.Status, f.Path)
		}
		e := changes.NewEntry(f.Path, status)
		e.OldPath = f.OldPath
		set.Add(e)
	}
	return set, nil
}

func filesJSON(set *changes.Set) []fileJSON {
	out := make([]fileJSON, 0, set.Len())
	for _, e := range set.Entries() {
		out = append(out, fileJSON{
			Path:     e.Path,
			OldPath:  e.OldPath,
			Status:   e.Status.String(),
			Category: e.Category.String(),
		})
	}
	return out
}

// --- Parse ---

type parseRequest struct {
	Diff string `json:"diff"`
}

// parsedFileJSON adds what only a parsed diff knows to a file entry.
type parsedFileJSON struct {
	fileJSON
	Display string `json:"display"`
	Binary  bool   `json:"binary,omitempty"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
}

type parseResponse struct {
	Files []parsedFileJSON `json:"files"`
	Stats diffStatsJSON    `json:"stats"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		s.writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "parsing diff: "+err.Error())
		return
	}

	files := make([]parsedFileJSON, 0, len(ds.Files))
	for _, f := range ds.Files {
		e := f.Entry()
		files = append(files, parsedFileJSON{
			fileJSON: fileJSON{
				Path:     e.Path,
				OldPath:  e.OldPath,
				Status:   e.Status.String(),
				Category: e.Category.String(),
			},
			Display: f.Name(),
			Binary:  f.IsBinary,
			Added:   f.AddedLines,
			Deleted: f.DeletedLines,
		})
	}

	nFiles, added, deleted := ds.Stats()
	s.writeJSON(w, http.StatusOK, parseResponse{
		Files: files,
		Stats: diffStatsJSON{Files: nFiles, Added: added, Deleted: deleted},
	})
}

// --- Classify ---

type classificationJSON struct {
	Type       string  `json:"type"`
	Prefix     string  `json:"prefix"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
	Rule       string  `json:"rule"`
	Message    string  `json:"message"`
}

type classifyResponse struct {
	Recommendation  classificationJSON   `json:"recommendation"`
	Classifications []classificationJSON `json:"classifications"`
	Files           []fileJSON           `json:"files"`
}

func toClassificationJSON(c classify.Classification) classificationJSON {
	return classificationJSON{
		Type:       c.Type.String(),
		Prefix:     c.Type.Prefix(),
		Confidence: c.Confidence,
		Rationale:  c.Rationale,
		Rule:       c.Rule,
		Message:    c.CommitMessage(),
	}
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req changeRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	set, err := req.changeSet()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	all := classify.Classify(set, req.Subjects)
	resp := classifyResponse{
		Recommendation: toClassificationJSON(all[0]),
		Files:          filesJSON(set),
	}
	for _, c := range all {
		resp.Classifications = append(resp.Classifications, toClassificationJSON(c))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// --- Content ---

type contentRequest struct {
	changeRequest
	Branch string `json:"branch"`
}

type sectionJSON struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type contentResponse struct {
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	CommitMessage string        `json:"commit_message"`
	Sections      []sectionJSON `json:"sections"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Branch == "" {
		s.writeError(w, http.StatusBadRequest, "branch is required")
		return
	}
	set, err := req.changeSet()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := classify.Recommend(set, req.Subjects)
	art := content.PullRequest(content.Input{
		Branch:         req.Branch,
		Classification: rec,
		Set:            set,
		Subjects:       req.Subjects,
	})

	resp := contentResponse{
		Title:         art.Title,
		Body:          art.Body(),
		CommitMessage: rec.CommitMessage(),
	}
	for _, sec := range art.Sections {
		resp.Sections = append(resp.Sections, sectionJSON{Name: sec.Name, Body: sec.Body})
	}
	s.writeJSON(w, http.StatusOK, resp)
}
