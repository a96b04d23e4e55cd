package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glide/ecs"
)

// EntityInfo is one row of the entity list.
type EntityInfo struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

// ListEntities returns the live entities whose id or component names contain
// filter, case-insensitively, ordered by id.
func ListEntities(storage *ecs.Storage, filter string) []EntityInfo {
	filter = strings.ToLower(strings.TrimSpace(filter))

	var entities []EntityInfo
	for _, archetype := range storage.Archetypes() {
		if archetype.Len() == 0 {
			continue
		}
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		matchesType := filter == "" || strings.Contains(strings.ToLower(strings.Join(names, " ")), filter)

		for id := range archetype.Iter() {
			if !matchesType && !strings.Contains(strconv.FormatUint(uint64(id), 10), filter) {
				continue
			}
			entities = append(entities, EntityInfo{ID: id, ArchetypeID: archetype.ID(), Components: names})
		}
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// pageBounds clamps page into range and returns the slice bounds for it.
func pageBounds(total, page, perPage int) (start, end, pages, clamped int) {
	if perPage < 1 {
		perPage = 1
	}
	pages = max(1, (total+perPage-1)/perPage)
	clamped = min(max(page, 0), pages-1)
	start = clamped * perPage
	end = min(start+perPage, total)
	return start, end, pages, clamped
}

// Inspector lists entities and edits the components of the selected one.
// Edits land outside the fixed schedules, so eased entities treat them as
// teleports.
type Inspector struct {
	Selected ecs.EntityId
	Filter   string
	PerPage  int

	page   int
	fields *fieldCache
}

func NewInspector(perPage int) *Inspector {
	return &Inspector{PerPage: perPage, fields: newFieldCache()}
}

func (in *Inspector) Title() string { return "Entities" }

func (in *Inspector) Draw(storage *ecs.Storage) {
	imgui.InputTextWithHint("##filter", "Filter by id or component...", &in.Filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		in.Filter = ""
	}

	entities := ListEntities(storage, in.Filter)
	start, end, pages, page := pageBounds(len(entities), in.page, in.PerPage)
	in.page = page

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range entities[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			label := strconv.FormatUint(uint64(entity.ID), 10)
			if imgui.SelectableBoolV(label, in.Selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				in.Selected = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", page+1, pages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && in.page > 0 {
		in.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && in.page < pages-1 {
		in.page++
	}

	imgui.Separator()
	in.drawSelected(storage)
}

func (in *Inspector) drawSelected(storage *ecs.Storage) {
	if in.Selected == 0 {
		imgui.Text("No entity selected")
		return
	}
	archetype := storage.ArchetypeOf(in.Selected)
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", in.Selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d in archetype 0x%08X", in.Selected, archetype.ID()))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(in.Selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			in.drawValue(compType.Name(), compType.String(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// drawValue draws v with an editor when it is settable. path keeps imgui ids unique.
func (in *Inspector) drawValue(name, path string, v reflect.Value) {
	id := "##" + path

	switch {
	case !v.IsValid():
		imgui.Text(name + ": <invalid>")

	case v.Kind() == reflect.Pointer:
		if v.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		in.drawValue(name, path, v.Elem())

	case isNumber(v.Kind()):
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		in.drawNumber(id, v)

	case v.Kind() == reflect.Array && v.Len() <= 4 && isNumber(v.Type().Elem().Kind()):
		imgui.Text(name + ":")
		for i := range v.Len() {
			imgui.SameLine()
			imgui.SetNextItemWidth(80)
			in.drawNumber(fmt.Sprintf("%s.%d", id, i), v.Index(i))
		}

	case v.Kind() == reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name+id, &b) && v.CanSet() {
			v.SetBool(b)
		}

	case v.Kind() == reflect.String:
		s := v.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}

	case v.Kind() == reflect.Struct:
		fields := in.fields.get(v.Type())
		if len(fields) == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
			return
		}
		if imgui.TreeNodeStr(name + id) {
			for _, f := range fields {
				in.drawValue(f.Name, path+"."+f.Name, v.Field(f.Index))
			}
			imgui.TreePop()
		}

	case v.Kind() == reflect.Slice || v.Kind() == reflect.Map:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))

	case v.Kind() == reflect.Func:
		imgui.Text(name + ": func")

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}

func (in *Inspector) drawNumber(id string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		if imgui.InputFloat(id, &f) {
			setNumber(v, float64(f))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		if imgui.InputInt(id, &n) {
			setNumber(v, float64(n))
		}
	default:
		n := int32(v.Int())
		if imgui.InputInt(id, &n) {
			setNumber(v, float64(n))
		}
	}
}
