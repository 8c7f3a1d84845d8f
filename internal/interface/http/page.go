package http

import (
	"embed"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
)

//go:embed templates/*.html
var templateFS embed.FS

const chartWidthPercent = 100

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type pageData struct {
	Title    string
	Sections []sectionView
	Result   *resultView
	Error    string
}

type sectionView struct {
	Title  string
	Fields []fieldView
}

type fieldView struct {
	Key     string
	Label   string
	Input   string
	Value   string
	Step    string
	Options []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type resultView struct {
	Display string
	Bars    []barView
}

type barView struct {
	Label string
	Value string
	Width int
}

// FormPage renders the empty survey.
func (h *Handler) FormPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.buildPage(footprint.DefaultSurvey(), nil, ""))
}

// SubmitForm scores a form post and renders the result next to the answers.
func (h *Handler) SubmitForm(c *gin.Context) {
	survey := footprint.DefaultSurvey()
	if err := c.ShouldBind(&survey); err != nil {
		h.logger.Warn("form binding failed", "error", err)
		c.HTML(http.StatusBadRequest, "index.html", h.buildPage(survey, nil, "Some answers could not be read: "+err.Error()))
		return
	}

	est, err := h.svc.Estimate(c.Request.Context(), survey)
	if err != nil {
		httpErr := estimateError(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("form estimate failed", "code", httpErr.Code, "error", err)
		}
		c.HTML(httpErr.Status, "index.html", h.buildPage(survey, nil, httpErr.Message))
		return
	}
	c.HTML(http.StatusOK, "index.html", h.buildPage(survey, &est, ""))
}

func (h *Handler) buildPage(s footprint.Survey, est *footprint.Estimate, errMsg string) pageData {
	form := h.svc.Form()
	values := surveyValues(s)

	data := pageData{Title: form.Title, Error: errMsg}
	for _, section := range form.Sections {
		sv := sectionView{Title: section.Title}
		for _, f := range section.Fields {
			fv := fieldView{Key: f.Key, Label: f.Label, Input: f.Input}
			switch f.Input {
			case footprint.InputNumber:
				fv.Value = values.numbers[f.Key]
				fv.Step = "any"
				if f.Integer {
					fv.Step = "1"
				}
			case footprint.InputMultiSelect:
				chosen := values.sets[f.Key]
				for _, opt := range f.Options {
					fv.Options = append(fv.Options, optionView{Value: opt, Label: opt, Selected: slices.Contains(chosen, opt)})
				}
			default:
				current := values.choices[f.Key]
				for _, opt := range f.Options {
					label := opt
					if label == "" {
						label = "none"
					}
					fv.Options = append(fv.Options, optionView{Value: opt, Label: label, Selected: opt == current})
				}
			}
			sv.Fields = append(sv.Fields, fv)
		}
		data.Sections = append(data.Sections, sv)
	}

	if est != nil {
		rv := &resultView{Display: est.Display}
		widths := footprint.BarWidths(est.Ranking, chartWidthPercent)
		for i, item := range est.Ranking {
			rv.Bars = append(rv.Bars, barView{
				Label: item.Label,
				Value: strconv.FormatFloat(item.Value, 'f', -1, 64),
				Width: widths[i],
			})
		}
		data.Result = rv
	}
	return data
}

type formValues struct {
	choices map[string]string
	numbers map[string]string
	sets    map[string][]string
}

func surveyValues(s footprint.Survey) formValues {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return formValues{
		choices: map[string]string{
			"bodyType":         s.BodyType,
			"sex":              s.Sex,
			"diet":             s.Diet,
			"shower":           s.Shower,
			"heatingSource":    s.HeatingSource,
			"transport":        s.Transport,
			"vehicleType":      s.VehicleType,
			"socialActivity":   s.SocialActivity,
			"airTravel":        s.AirTravel,
			"wasteBagSize":     s.WasteBagSize,
			"energyEfficiency": s.EnergyEfficiency,
		},
		numbers: map[string]string{
			"groceryBill":       num(s.GroceryBill),
			"vehicleDistanceKm": num(s.VehicleDistanceKm),
			"wasteBagCount":     strconv.Itoa(s.WasteBagCount),
			"screenHours":       num(s.ScreenHours),
			"newClothes":        strconv.Itoa(s.NewClothes),
			"internetHours":     num(s.InternetHours),
		},
		sets: map[string][]string{
			"recycling":   s.Recycling,
			"cookingWith": s.CookingWith,
		},
	}
}
