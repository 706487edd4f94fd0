package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Match.Company}} – Form {{.Match.FormType}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1f2a44 0%, #2d3a5f 100%);
      color: #ffffff;
    }

    .company {
      font-size: 22px;
      font-weight: 700;
      letter-spacing: 0.02em;
      margin-bottom: 4px;
    }

    .form-type {
      font-size: 15px;
      opacity: 0.9;
    }

    .badge {
      display: inline-block;
      margin-top: 8px;
      padding: 4px 10px;
      font-size: 11px;
      font-weight: 600;
      border-radius: 4px;
      background: #0ea5e9;
      color: #ffffff;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .meta-grid {
      display: table;
      width: 100%;
      font-size: 14px;
    }

    .meta-row {
      display: table-row;
    }

    .meta-label {
      display: table-cell;
      padding: 4px 16px 4px 0;
      color: #6b7280;
      white-space: nowrap;
      width: 1%;
    }

    .meta-value {
      display: table-cell;
      padding: 4px 0;
      word-break: break-all;
    }

    .keyword {
      display: inline-block;
      margin: 0 6px 6px 0;
      padding: 4px 10px;
      font-size: 12px;
      border-radius: 9999px;
      background: #eff6ff;
      color: #1d4ed8;
      border: 1px solid #dbeafe;
    }

    .context {
      padding: 12px 16px;
      background: #f9fafb;
      border-left: 3px solid #d1d5db;
      border-radius: 0 4px 4px 0;
      font-size: 14px;
      color: #374151;
    }

    ul {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    li {
      margin-bottom: 6px;
    }

    .link-button {
      display: inline-block;
      padding: 10px 18px;
      background: #1f2a44;
      color: #ffffff !important;
      text-decoration: none;
      font-size: 14px;
      font-weight: 600;
      border-radius: 6px;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="company">{{.Match.Company}}</div>
      <div class="form-type">Form {{.Match.FormType}}</div>
      {{if .Match.FilerType}}<span class="badge">{{.Match.FilerType}}</span>{{end}}
    </div>

    <div class="section">
      <div class="meta-grid">
        <div class="meta-row">
          <div class="meta-label">CIK</div>
          <div class="meta-value">{{.Match.CIK}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Accession No</div>
          <div class="meta-value">{{.Match.AccessionNo}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Updated</div>
          <div class="meta-value">{{.Match.Updated}}</div>
        </div>
      </div>
    </div>

    {{if .Match.KeywordsFound}}
    <div class="section">
      <div class="section-title">Keywords</div>
      {{range .Match.KeywordsFound}}<span class="keyword">{{.}}</span>{{end}}
    </div>
    {{end}}

    {{if .Match.Context}}
    <div class="section">
      <div class="section-title">Context</div>
      <div class="context">{{.Match.Context}}</div>
    </div>
    {{end}}

    {{if .Analysis}}
      {{if .Analysis.Summary}}
      <div class="section">
        <div class="section-title">AI Summary</div>
        <ul>
          {{range .Analysis.Summary}}<li>{{.}}</li>{{end}}
        </ul>
      </div>
      {{end}}

      {{if .Analysis.NotableSignals}}
      <div class="section">
        <div class="section-title">Notable Signals</div>
        <ul>
          {{range .Analysis.NotableSignals}}<li>{{.}}</li>{{end}}
        </ul>
      </div>
      {{end}}
    {{end}}

    {{if .Match.Link}}
    <div class="section">
      <a class="link-button" href="{{.Match.Link}}">View filing on EDGAR</a>
    </div>
    {{end}}

    <div class="footer">
      Sent by form4watch
    </div>
  </div>
</body>
</html>`
