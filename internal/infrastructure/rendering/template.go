package rendering

// reportTemplate is the default report layout. Values arriving here are
// already formatted display strings; html/template escaping applies.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Noto Sans", Arial, sans-serif; font-size: 11px; color: #1a1a1a; margin: 0; }
  .report-header { text-align: center; border-bottom: 2px solid #2c5f2d; padding-bottom: 8px; margin-bottom: 16px; }
  .report-header h1 { font-size: 18px; margin: 0 0 4px 0; }
  .report-meta { font-size: 10px; color: #555; }
  .section { margin-bottom: 20px; page-break-inside: avoid; }
  .section h2 { font-size: 13px; background: #e8f0e8; padding: 4px 8px; margin: 0 0 6px 0; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #999; padding: 3px 6px; text-align: left; }
  th { background: #f4f4f4; }
  .group-header td { background: #f0f4f0; font-weight: bold; }
  .narrative { margin-bottom: 10px; }
  .narrative h3 { font-size: 12px; margin: 0 0 4px 0; }
  .narrative table td:first-child { width: 30%; font-weight: bold; background: #fafafa; }
  .placeholder { font-style: italic; color: #777; padding: 6px 0; }
  .warning { font-size: 9px; color: #8a6d00; margin-top: 4px; }
  .kvk-error { font-size: 9px; color: #a33; margin-top: 4px; }
</style>
</head>
<body>
<div class="report-header">
  <h1>{{.Title}}</h1>
  <div class="report-meta">
    Generated on {{.GeneratedAt}} by {{.GeneratedBy}} &middot; {{.ScopeSummary}}{{if .FailedKvks}} &middot; {{.FailedKvks}} KVK(s) had incomplete data{{end}}
  </div>
</div>
{{range .Sections}}
<div class="section">
  <h2>{{.ID}} {{.Title}}</h2>
  {{if .Empty}}
  <div class="placeholder">{{.Placeholder}}</div>
  {{else if .Narrative}}
  {{range .Blocks}}
  <div class="narrative">
    <h3>{{.KvkName}}</h3>
    <table>
      {{range .Fields}}<tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
      {{end}}
    </table>
  </div>
  {{end}}
  {{else if .Grouped}}
  <table>
    <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
    {{$width := len .Header}}
    {{range .Groups}}
    <tr class="group-header"><td colspan="{{$width}}">{{.Key}}</td></tr>
    {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
    {{end}}
  </table>
  {{else}}
  <table>
    <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
    {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
  </table>
  {{end}}
  {{range .KvkErrors}}<div class="kvk-error">{{.}}</div>{{end}}
  {{range .Warnings}}<div class="warning">{{.}}</div>{{end}}
</div>
{{end}}
</body>
</html>
`
