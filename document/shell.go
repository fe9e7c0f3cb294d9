package document

// BaseStyle is emitted before the page rule and the caller's own style, so
// caller rules win on equal specificity.
const BaseStyle = `body { font-family: Arial, sans-serif; font-size: 12px; color: #333; line-height: 1.4; margin: 0; }
h1 { color: #2c3e50; font-size: 24px; margin-bottom: 10px; }
h2 { color: #34495e; font-size: 18px; margin-top: 20px; margin-bottom: 10px; }
table { width: 100%; border-collapse: collapse; margin: 10px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 11px; }
th { background-color: #f8f9fa; font-weight: bold; }
.page-break { page-break-before: always; }
.no-break { page-break-inside: avoid; }
.header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
.footer { margin-top: 30px; text-align: center; font-size: 10px; color: #777; }`

const shellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{ title }}</title>
<style>
` + BaseStyle + `
@page { size: {{ page_size }}; margin: {{ margin }}; }
{{ style|safe }}
</style>
</head>
<body>
<div class="header">
<h1>{{ title }}</h1>
<p>{{ generated_line }}</p>
</div>
<div class="content">
{{ markup|safe }}
</div>
<div class="footer">
<p>{{ footer }}</p>
</div>
</body>
</html>
`
