package adminapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/domain"
	"github.com/florelia/floraladmin/internal/draft"
	"github.com/florelia/floraladmin/internal/webserver"
)

func registerFormRoutes() {
	webserver.ApiGET("/products/form", getForm)
	webserver.ApiPUT("/products/form", updateFormFields)
	webserver.ApiPOST("/products/form/category", setFormCategory)
	webserver.ApiPOST("/products/form/sizes", addFormSize)
	webserver.ApiPUT("/products/form/sizes/:index", updateFormSize)
	webserver.ApiDELETE("/products/form/sizes/:index", removeFormSize)
	webserver.ApiPOST("/products/form/flowers/:kind", addFormFlower)
	webserver.ApiDELETE("/products/form/flowers/:kind/:index", removeFormFlower)
	webserver.ApiPOST("/products/form/flowers/:kind/:index/colors", toggleFormFlowerColor)
	webserver.ApiPUT("/products/form/flowers/:kind/:index/count", updateFormFlowerCount)
	webserver.ApiPOST("/products/form/bear/sizes", toggleFormBearSize)
	webserver.ApiPUT("/products/form/bear/sizes/:index", updateFormBearSize)
	webserver.ApiPOST("/products/form/bear/colors", toggleFormBearColor)
	webserver.ApiPOST("/products/form/attachments", addFormAttachment)
	webserver.ApiDELETE("/products/form/attachments/:id", removeFormAttachment)
	webserver.ApiPOST("/products/form/submit", submitForm)
	webserver.ApiGET("/products/form/progress", uploadProgress)
}

type attachmentView struct {
	ID       string          `json:"id"`
	Filename string          `json:"filename"`
	Kind     draft.AssetKind `json:"kind"`
	Preview  string          `json:"preview,omitempty"`
}

type formView struct {
	Draft          draft.Draft      `json:"draft"`
	Active         draft.View       `json:"active"`
	Attachments    []attachmentView `json:"attachments"`
	UploadInFlight bool             `json:"uploadInFlight"`
}

func viewForm(c echo.Context) error {
	app := webserver.GetApp(c)
	var view formView
	_ = app.WithForm(func(f *draft.Form) error {
		view.Draft = f.Draft
		view.Active = f.Draft.ActiveView()
		for _, att := range f.Attachments {
			view.Attachments = append(view.Attachments, attachmentView{
				ID: att.ID, Filename: att.Filename, Kind: att.Kind, Preview: att.Preview,
			})
		}
		return nil
	})
	view.UploadInFlight = app.Pipeline().InFlight()
	return ok(c, view)
}

// errUploadLocked rejects edits while a submission holds the form.
var errUploadLocked = errors.New("form locked by upload")

// mutateForm applies one discrete form edit. The in-flight check runs inside
// the form lock, so an edit can never slip between a submission's start and
// its snapshot of the form.
func mutateForm(c echo.Context, fn func(f *draft.Form) error) error {
	app := webserver.GetApp(c)
	err := app.WithForm(func(f *draft.Form) error {
		if app.Pipeline().InFlight() {
			return errUploadLocked
		}
		return fn(f)
	})
	if errors.Is(err, errUploadLocked) {
		return fail(c, http.StatusConflict, "an upload is in progress, the form is locked")
	}
	if err != nil {
		return failErr(c, err)
	}
	return viewForm(c)
}

func getForm(c echo.Context) error {
	return viewForm(c)
}

type formFieldsPayload struct {
	Name             *string            `json:"name"`
	Description      *string            `json:"description"`
	Occasion         *string            `json:"occasion"`
	CareInstructions *string            `json:"care_instructions"`
	Featured         *bool              `json:"featured"`
	Dimensions       *domain.Dimensions `json:"dimensions"`
}

func updateFormFields(c echo.Context) error {
	var payload formFieldsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse form fields")
	}
	return mutateForm(c, func(f *draft.Form) error {
		if payload.Name != nil {
			f.Draft.Name = *payload.Name
		}
		if payload.Description != nil {
			f.Draft.Description = *payload.Description
		}
		if payload.Occasion != nil {
			f.Draft.Occasion = *payload.Occasion
		}
		if payload.CareInstructions != nil {
			f.Draft.CareInstructions = *payload.CareInstructions
		}
		if payload.Featured != nil {
			f.Draft.Featured = *payload.Featured
		}
		if payload.Dimensions != nil {
			f.Draft.Dimensions = *payload.Dimensions
		}
		return nil
	})
}

func setFormCategory(c echo.Context) error {
	var payload struct {
		Category domain.Category `json:"category"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse category")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.SetCategory(payload.Category)
	})
}

func addFormSize(c echo.Context) error {
	var payload struct {
		Size string `json:"size"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse size")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.AddSize(payload.Size)
	})
}

type sizeFieldPayload struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

func updateFormSize(c echo.Context) error {
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid size index")
	}
	var payload sizeFieldPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse size update")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.UpdateSize(index, payload.Field, payload.Value)
	})
}

func removeFormSize(c echo.Context) error {
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid size index")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.RemoveSize(index)
	})
}

func flowerKindParam(c echo.Context) (draft.FlowerKind, bool) {
	kind := draft.FlowerKind(c.Param("kind"))
	return kind, kind == draft.KindFresh || kind == draft.KindArtificial
}

func addFormFlower(c echo.Context) error {
	kind, valid := flowerKindParam(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown flower kind")
	}
	var payload struct {
		Flower string `json:"flower"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse flower")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.AddFlowerSelection(kind, payload.Flower)
	})
}

func removeFormFlower(c echo.Context) error {
	kind, valid := flowerKindParam(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown flower kind")
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid flower index")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.RemoveFlowerSelection(kind, index)
	})
}

func toggleFormFlowerColor(c echo.Context) error {
	kind, valid := flowerKindParam(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown flower kind")
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid flower index")
	}
	var payload struct {
		Color string `json:"color"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse color")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.ToggleFlowerColor(kind, index, payload.Color)
	})
}

func updateFormFlowerCount(c echo.Context) error {
	kind, valid := flowerKindParam(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown flower kind")
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid flower index")
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse count")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.UpdateFlowerCount(kind, index, payload.Count)
	})
}

func toggleFormBearSize(c echo.Context) error {
	var payload struct {
		Size string `json:"size"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse bear size")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.ToggleBearSize(payload.Size)
	})
}

func updateFormBearSize(c echo.Context) error {
	index, err := parseIndexParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid bear size index")
	}
	var payload sizeFieldPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse bear size update")
	}
	return mutateForm(c, func(f *draft.Form) error {
		return f.Draft.UpdateBearSize(index, payload.Field, payload.Value)
	})
}

func toggleFormBearColor(c echo.Context) error {
	var payload struct {
		Color string `json:"color"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse bear color")
	}
	return mutateForm(c, func(f *draft.Form) error {
		f.Draft.ToggleBearColor(payload.Color)
		return nil
	})
}

func addFormAttachment(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "missing file")
	}
	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "unable to read file")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fail(c, http.StatusBadRequest, "unable to read file")
	}

	app := webserver.GetApp(c)
	var staged draft.Attachment
	mutate := mutateForm(c, func(f *draft.Form) error {
		att, aerr := f.Attach(fh.Filename, data)
		if aerr != nil {
			return aerr
		}
		staged = att
		return nil
	})
	if staged.ID != "" {
		// preview is generated off-thread; the view picks it up on next fetch
		app.Previewer().Generate(staged, func(id, preview string, perr error) {
			if perr != nil {
				zap.L().Debug("preview generation failed", zap.String("file", staged.Filename), zap.Error(perr))
				return
			}
			if preview == "" {
				return
			}
			_ = app.WithForm(func(f *draft.Form) error {
				f.SetPreview(id, preview)
				return nil
			})
		})
	}
	return mutate
}

func removeFormAttachment(c echo.Context) error {
	id := c.Param("id")
	return mutateForm(c, func(f *draft.Form) error {
		if !f.RemoveAttachment(id) {
			return draft.ValidationError("attachment not found")
		}
		return nil
	})
}

func submitForm(c echo.Context) error {
	app := webserver.GetApp(c)
	if err := app.Pipeline().Submit(c.Request().Context(), app); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]bool{"uploaded": true})
}

func uploadProgress(c echo.Context) error {
	app := webserver.GetApp(c)
	prog, have := app.Pipeline().LastProgress()
	resp := map[string]interface{}{
		"inFlight": app.Pipeline().InFlight(),
	}
	if have {
		resp["progress"] = prog
	}
	return ok(c, resp)
}

func parseIndexParam(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("index"))
}
