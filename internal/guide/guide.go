// Package guide renders the static PDF guide attached to the auto-reply
// email. The content is a fixed table of five sections; the output is
// regenerated on every send and is deterministic in section count, order,
// and text.
package guide

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// The core PDF fonts cover only Latin-1, so the Cyrillic text is rendered
// with an embedded DejaVu face. Embedding keeps the binary self-contained;
// function runtimes ship no font files.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte

	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// Section is one titled block of the guide.
type Section struct {
	Heading string
	Body    string
}

// BuildError reports a failed PDF render.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return fmt.Sprintf("build guide pdf: %v", e.Err) }
func (e *BuildError) Unwrap() error { return e.Err }

const title = "Гид по организации низкотемпературного склада"

var sections = []Section{
	{
		Heading: "Проектирование склада глубокой заморозки",
		Body: "Проект низкотемпературного склада начинается с расчёта товарных потоков и температурной карты. " +
			"Ошибки на этом этапе закладывают до 30% лишних эксплуатационных расходов: пересмотреть компоновку камер " +
			"после заливки полов уже практически невозможно.",
	},
	{
		Heading: "Температурные режимы и зонирование",
		Body: "Диапазон –20 °C…+5 °C требует разделения склада на зоны с независимым контролем. " +
			"Тамбуры и завесы между зонами снижают теплоприток и обмерзание ворот, а правильное зонирование " +
			"сокращает время комплектации заказов.",
	},
	{
		Heading: "Выбор холодильного оборудования",
		Body: "Мощность холодильных машин подбирается под пиковую загрузку с резервированием, а не под среднюю. " +
			"Каскадные схемы и частотное регулирование компрессоров окупаются за 2–3 года за счёт экономии " +
			"электроэнергии.",
	},
	{
		Heading: "Оптимизация складской логистики",
		Body: "Анализ текущих процессов выявляет узкие места: лишние перемещения, простои техники, пересортицу. " +
			"ABC-размещение продукции и пересмотр маршрутов погрузчиков дают рост пропускной способности без " +
			"капитальных вложений.",
	},
	{
		Heading: "Типичные ошибки и как их избежать",
		Body: "Чаще всего экономят на теплоизоляции полов и дверях — и платят за это годами. " +
			"Перед стройкой или реконструкцией закажите независимый аудит проекта: консультация стоит на порядки " +
			"дешевле переделки.",
	},
}

// Sections returns the static content table in render order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Title returns the guide's title heading.
func Title() string { return title }

// Build renders the guide into an in-memory PDF: A4, 20mm margins, centered
// title in the site accent color, then each section as heading + body.
func Build() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddUTF8FontFromBytes("DejaVu", "", fontRegular)
	pdf.AddUTF8FontFromBytes("DejaVu", "B", fontBold)
	pdf.AddPage()

	pdf.SetFont("DejaVu", "B", 18)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, s := range sections {
		pdf.SetFont("DejaVu", "B", 14)
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(0, 9, s.Heading, "", 1, "L", false, 0, "")

		pdf.SetFont("DejaVu", "", 11)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(0, 6, s.Body, "", "L", false)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &BuildError{Err: err}
	}
	return buf.Bytes(), nil
}
